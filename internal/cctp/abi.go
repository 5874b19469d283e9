package cctp

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// CCTP v1 contract ABIs (the fragments usdcli calls).
const (
	tokenMessengerABIJSON = `[{
		"inputs": [
			{"name": "amount", "type": "uint256"},
			{"name": "destinationDomain", "type": "uint32"},
			{"name": "mintRecipient", "type": "bytes32"},
			{"name": "burnToken", "type": "address"}
		],
		"name": "depositForBurn",
		"outputs": [{"name": "nonce", "type": "uint64"}],
		"stateMutability": "nonpayable",
		"type": "function"
	}]`

	messageTransmitterABIJSON = `[{
		"inputs": [
			{"name": "message", "type": "bytes"},
			{"name": "attestation", "type": "bytes"}
		],
		"name": "receiveMessage",
		"outputs": [{"name": "success", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	}]`
)

var (
	tokenMessengerABI     = mustABI(tokenMessengerABIJSON)
	messageTransmitterABI = mustABI(messageTransmitterABIJSON)
)

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("cctp: bad embedded ABI: %v", err))
	}
	return parsed
}

// DepositForBurnCalldata packs a depositForBurn call.
func DepositForBurnCalldata(amount *big.Int, destDomain uint32, mintRecipient [32]byte, burnToken common.Address) ([]byte, error) {
	return tokenMessengerABI.Pack("depositForBurn", amount, destDomain, mintRecipient, burnToken)
}

// ReceiveMessageCalldata packs a receiveMessage call.
func ReceiveMessageCalldata(message, attestation []byte) ([]byte, error) {
	return messageTransmitterABI.Pack("receiveMessage", message, attestation)
}

// AddressToBytes32 left-pads an EVM address into the bytes32 recipient form
// CCTP uses on the wire.
func AddressToBytes32(addr string) [32]byte {
	var out [32]byte
	copy(out[12:], common.HexToAddress(addr).Bytes())
	return out
}
