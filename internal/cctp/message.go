package cctp

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stablekit/usdcli/internal/chain"
)

// ErrNoMessageSent is returned when a burn receipt carries no MessageSent event.
var ErrNoMessageSent = errors.New("no MessageSent event in transaction logs")

// messageSentTopic is keccak256("MessageSent(bytes)"), topic0 of the event
// the MessageTransmitter emits during depositForBurn.
var messageSentTopic = "0x" + hex.EncodeToString(crypto.Keccak256([]byte("MessageSent(bytes)")))

var messageSentArgs = abi.Arguments{{Type: mustType("bytes")}}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("cctp: bad abi type %q: %v", t, err))
	}
	return typ
}

// ExtractMessage pulls the CCTP message body out of a burn transaction
// receipt by locating the MessageSent event.
func ExtractMessage(receipt *chain.TxReceipt) ([]byte, error) {
	for _, log := range receipt.Logs {
		if len(log.Topics) == 0 || !strings.EqualFold(log.Topics[0], messageSentTopic) {
			continue
		}
		data, err := hex.DecodeString(strings.TrimPrefix(log.Data, "0x"))
		if err != nil {
			return nil, fmt.Errorf("decoding MessageSent data: %w", err)
		}
		values, err := messageSentArgs.Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("unpacking MessageSent event: %w", err)
		}
		message, ok := values[0].([]byte)
		if !ok || len(message) == 0 {
			return nil, fmt.Errorf("unexpected MessageSent payload")
		}
		return message, nil
	}
	return nil, fmt.Errorf("%w (tx: %s)", ErrNoMessageSent, receipt.Hash)
}

// MessageHash returns the keccak256 hash of a CCTP message, the key Circle's
// attestation service indexes by.
func MessageHash(message []byte) string {
	return "0x" + hex.EncodeToString(crypto.Keccak256(message))
}
