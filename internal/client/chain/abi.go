package chain

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract constants, mirrored from the deployed Nostos contract.
var (
	// PlatformFee is 0.0001 ETH, paid to the fee recipient.
	PlatformFee = big.NewInt(100_000_000_000_000)
	// MinStake is 0.0004 ETH, held by the contract for forfeiture.
	MinStake = big.NewInt(400_000_000_000_000)
	// RegistrationFee is 0.0005 ETH, the minimum total payment (fee + stake).
	RegistrationFee = big.NewInt(500_000_000_000_000)
)

// ClaimTimeout is how long an owner has to act on a claim before the
// finder's escrow can be recovered.
const ClaimTimeout = 30 * 24 * time.Hour

// nostosABI covers the contract surface this client calls. Field names in
// the outputs drive struct unpacking.
const nostosABI = `[
  {"type":"function","name":"getItem","stateMutability":"view",
   "inputs":[{"name":"itemId","type":"bytes32"}],
   "outputs":[
     {"name":"owner","type":"address"},
     {"name":"status","type":"uint8"},
     {"name":"registrationTime","type":"uint256"},
     {"name":"lastActivity","type":"uint256"},
     {"name":"stake","type":"uint256"},
     {"name":"encryptedData","type":"bytes"}]},
  {"type":"function","name":"getClaimCount","stateMutability":"view",
   "inputs":[{"name":"itemId","type":"bytes32"}],
   "outputs":[{"name":"count","type":"uint256"}]},
  {"type":"function","name":"getClaim","stateMutability":"view",
   "inputs":[{"name":"itemId","type":"bytes32"},{"name":"claimIndex","type":"uint256"}],
   "outputs":[
     {"name":"finder","type":"address"},
     {"name":"status","type":"uint8"},
     {"name":"timestamp","type":"uint256"},
     {"name":"revealDeadline","type":"uint256"},
     {"name":"escrowAmount","type":"uint256"},
     {"name":"encryptedContact","type":"bytes"}]},
  {"type":"function","name":"getUserItems","stateMutability":"view",
   "inputs":[{"name":"user","type":"address"}],
   "outputs":[{"name":"itemIds","type":"bytes32[]"}]},
  {"type":"function","name":"getFinderClaims","stateMutability":"view",
   "inputs":[{"name":"finder","type":"address"}],
   "outputs":[{"name":"itemIds","type":"bytes32[]"}]},
  {"type":"function","name":"getFinderClaimIndex","stateMutability":"view",
   "inputs":[{"name":"itemId","type":"bytes32"},{"name":"finder","type":"address"}],
   "outputs":[{"name":"claimIndex","type":"uint256"}]},
  {"type":"function","name":"getUserStats","stateMutability":"view",
   "inputs":[{"name":"user","type":"address"}],
   "outputs":[{"name":"packed","type":"uint256"}]},
  {"type":"function","name":"getRegistrationFee","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"fee","type":"uint256"}]},
  {"type":"function","name":"registerItem","stateMutability":"payable",
   "inputs":[{"name":"itemId","type":"bytes32"},{"name":"encryptedData","type":"bytes"}],
   "outputs":[]},
  {"type":"function","name":"submitClaim","stateMutability":"payable",
   "inputs":[{"name":"itemId","type":"bytes32"},{"name":"encryptedContact","type":"bytes"}],
   "outputs":[]},
  {"type":"function","name":"revealContactInfo","stateMutability":"payable",
   "inputs":[{"name":"itemId","type":"bytes32"},{"name":"claimIndex","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"confirmReturn","stateMutability":"nonpayable",
   "inputs":[{"name":"itemId","type":"bytes32"},{"name":"claimIndex","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"approveClaim","stateMutability":"nonpayable",
   "inputs":[{"name":"itemId","type":"bytes32"},{"name":"claimIndex","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"rejectClaim","stateMutability":"nonpayable",
   "inputs":[{"name":"itemId","type":"bytes32"},{"name":"claimIndex","type":"uint256"}],
   "outputs":[]},
  {"type":"event","name":"ItemRegistered","inputs":[
     {"name":"itemId","type":"bytes32","indexed":true},
     {"name":"owner","type":"address","indexed":true},
     {"name":"stake","type":"uint256","indexed":false},
     {"name":"timestamp","type":"uint256","indexed":false},
     {"name":"encryptedData","type":"bytes","indexed":false}]},
  {"type":"event","name":"ClaimSubmitted","inputs":[
     {"name":"itemId","type":"bytes32","indexed":true},
     {"name":"finder","type":"address","indexed":true},
     {"name":"claimIndex","type":"uint256","indexed":true},
     {"name":"timestamp","type":"uint256","indexed":false},
     {"name":"encryptedContact","type":"bytes","indexed":false}]},
  {"type":"event","name":"ContactRevealed","inputs":[
     {"name":"itemId","type":"bytes32","indexed":true},
     {"name":"owner","type":"address","indexed":true},
     {"name":"claimIndex","type":"uint256","indexed":true},
     {"name":"escrowAmount","type":"uint256","indexed":false},
     {"name":"timestamp","type":"uint256","indexed":false}]},
  {"type":"event","name":"ItemReturned","inputs":[
     {"name":"itemId","type":"bytes32","indexed":true},
     {"name":"owner","type":"address","indexed":true},
     {"name":"finder","type":"address","indexed":true},
     {"name":"rewardAmount","type":"uint256","indexed":false},
     {"name":"timestamp","type":"uint256","indexed":false}]}
]`

var contractABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(nostosABI))
	if err != nil {
		panic(err)
	}
	return parsed
}()
