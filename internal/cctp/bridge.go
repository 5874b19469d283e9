package cctp

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stablekit/usdcli/internal/chain"
	"github.com/stablekit/usdcli/internal/token"
)

// Gas fallbacks when estimation fails (approve may be estimated against
// not-yet-mined state).
const (
	approveGasFallback = 100_000
	burnGasFallback    = 300_000
	mintGasFallback    = 300_000
)

// Result describes the outcome of a bridge run. AttestationPending marks the
// partial-success case: the burn landed but the attestation was not observed
// within the polling budget, so the mint has not happened yet. BurnTx is
// always set once the burn confirms and is what `usdcli status` resumes from.
type Result struct {
	Amount      string `json:"amount"`
	FromChain   string `json:"from_chain"`
	ToChain     string `json:"to_chain"`
	Recipient   string `json:"recipient"`
	ApproveTx   string `json:"approve_tx,omitempty"`
	BurnTx      string `json:"burn_tx,omitempty"`
	MessageHash string `json:"message_hash,omitempty"`
	MintTx      string `json:"mint_tx,omitempty"`

	AttestationPending bool   `json:"attestation_pending,omitempty"`
	Note               string `json:"note,omitempty"`
}

// Bridger orchestrates a CCTP transfer: approve, burn, attest, mint.
type Bridger struct {
	srcChain *chain.Chain
	dstChain *chain.Chain
	mode     string

	src    *chain.EVMClient
	dst    *chain.EVMClient
	signer chain.TxSigner
	attest *AttestationClient

	// Poll bounds the attestation wait; ReceiptTimeout bounds each
	// transaction-mining wait.
	Poll           PollConfig
	ReceiptTimeout time.Duration

	// Progress, if set, receives step-by-step updates for display.
	Progress func(msg string)
}

// NewBridger wires a bridge between two chains in the given mode.
func NewBridger(srcChain, dstChain *chain.Chain, mode string, src, dst *chain.EVMClient, signer chain.TxSigner) *Bridger {
	return &Bridger{
		srcChain:       srcChain,
		dstChain:       dstChain,
		mode:           mode,
		src:            src,
		dst:            dst,
		signer:         signer,
		attest:         NewAttestationClient(mode),
		Poll:           DefaultPollConfig(),
		ReceiptTimeout: 3 * time.Minute,
	}
}

// WithAttestationClient overrides the attestation endpoint (tests).
func (b *Bridger) WithAttestationClient(c *AttestationClient) *Bridger {
	b.attest = c
	return b
}

// Bridge runs the full four-step workflow and returns a Result. The error
// return is non-nil only for hard failures; attestation timeout after a
// confirmed burn yields a Result with AttestationPending set and a nil error.
func (b *Bridger) Bridge(ctx context.Context, recipient, amount string) (*Result, error) {
	if !b.srcChain.SupportsBridge(b.mode) || !b.dstChain.SupportsBridge(b.mode) {
		return nil, fmt.Errorf("%w: %s -> %s (%s)", chain.ErrCCTPNotSupported,
			b.srcChain.Name, b.dstChain.Name, b.mode)
	}

	usdcAddr, err := b.srcChain.USDC(b.mode)
	if err != nil {
		return nil, err
	}
	messengerAddr, err := b.srcChain.TokenMessenger(b.mode)
	if err != nil {
		return nil, err
	}
	destDomain, err := b.dstChain.CCTPDomain()
	if err != nil {
		return nil, err
	}

	usdc := token.New(b.src, usdcAddr)
	decimals, err := usdc.Decimals()
	if err != nil {
		return nil, err
	}
	raw, err := token.ParseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Amount:    amount,
		FromChain: b.srcChain.NetworkName(b.mode),
		ToChain:   b.dstChain.NetworkName(b.mode),
		Recipient: recipient,
	}

	// Step 1: approve the TokenMessenger to pull the USDC.
	b.report("Step 1/4: approving USDC spend")
	sender := chain.NewTxSender(b.src, b.signer, nil)
	approveTx, err := sender.Send(usdcAddr, token.ApproveCalldata(messengerAddr, raw), approveGasFallback)
	if err != nil {
		return nil, fmt.Errorf("approve failed: %w", err)
	}
	if _, err := b.waitMined(ctx, b.src, approveTx); err != nil {
		return nil, fmt.Errorf("approve failed: %w", err)
	}
	result.ApproveTx = approveTx

	// Step 2: burn on the source chain.
	b.report(fmt.Sprintf("Step 2/4: burning USDC on %s", result.FromChain))
	burnCalldata, err := DepositForBurnCalldata(raw, destDomain, AddressToBytes32(recipient), common.HexToAddress(usdcAddr))
	if err != nil {
		return nil, fmt.Errorf("encoding depositForBurn: %w", err)
	}
	burnTx, err := sender.Send(messengerAddr, burnCalldata, burnGasFallback)
	if err != nil {
		return nil, fmt.Errorf("burn failed: %w", err)
	}
	burnReceipt, err := b.waitMined(ctx, b.src, burnTx)
	if err != nil {
		return nil, fmt.Errorf("burn failed: %w", err)
	}
	result.BurnTx = burnTx

	// Step 3: recover the message from the burn logs and wait for the
	// attestation.
	b.report("Step 3/4: waiting for Circle attestation")
	message, err := ExtractMessage(burnReceipt)
	if err != nil {
		return nil, err
	}
	result.MessageHash = MessageHash(message)

	att, err := b.attest.Wait(ctx, result.MessageHash, b.Poll, func(attempt, max int) {
		b.report(fmt.Sprintf("   waiting for attestation... (%d/%d)", attempt, max))
	})
	if errors.Is(err, ErrAttestationTimeout) {
		result.AttestationPending = true
		result.Note = fmt.Sprintf("Burn confirmed, attestation still pending. Resume with: usdcli status %s --from-chain %s --to-chain %s",
			burnTx, b.srcChain.Name, b.dstChain.Name)
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	// Step 4: mint on the destination chain.
	b.report(fmt.Sprintf("Step 4/4: minting USDC on %s", result.ToChain))
	mintTx, err := b.Mint(ctx, message, att.Attestation)
	if err != nil {
		result.AttestationPending = true
		result.Note = fmt.Sprintf("Burn and attestation complete, mint failed: %v. Resume with: usdcli status %s --from-chain %s --to-chain %s --complete",
			err, burnTx, b.srcChain.Name, b.dstChain.Name)
		return result, nil
	}
	result.MintTx = mintTx
	return result, nil
}

// RecoverMessage re-derives the CCTP message and its hash from an already
// mined burn transaction on the source chain.
func (b *Bridger) RecoverMessage(burnTx string) ([]byte, string, error) {
	receipt, err := b.src.GetTransactionReceipt(burnTx)
	if err != nil {
		return nil, "", err
	}
	if receipt == nil {
		return nil, "", fmt.Errorf("burn transaction %s not mined yet", burnTx)
	}
	if receipt.Status == 0 {
		return nil, "", fmt.Errorf("burn transaction %s reverted", burnTx)
	}
	message, err := ExtractMessage(receipt)
	if err != nil {
		return nil, "", err
	}
	return message, MessageHash(message), nil
}

// CheckAttestation fetches the attestation state for a message hash once.
func (b *Bridger) CheckAttestation(ctx context.Context, messageHash string) (*Attestation, error) {
	return b.attest.Get(ctx, messageHash)
}

// Mint submits receiveMessage on the destination chain and waits for it to
// mine. attestation is the 0x-hex signature blob from the attestation service.
func (b *Bridger) Mint(ctx context.Context, message []byte, attestation string) (string, error) {
	attBytes, err := hex.DecodeString(strings.TrimPrefix(attestation, "0x"))
	if err != nil {
		return "", fmt.Errorf("decoding attestation: %w", err)
	}
	calldata, err := ReceiveMessageCalldata(message, attBytes)
	if err != nil {
		return "", fmt.Errorf("encoding receiveMessage: %w", err)
	}

	transmitterAddr, err := b.dstChain.MessageTransmitter(b.mode)
	if err != nil {
		return "", err
	}

	sender := chain.NewTxSender(b.dst, b.signer, nil)
	mintTx, err := sender.Send(transmitterAddr, calldata, mintGasFallback)
	if err != nil {
		return "", err
	}
	if _, err := b.waitMined(ctx, b.dst, mintTx); err != nil {
		return "", err
	}
	return mintTx, nil
}

func (b *Bridger) waitMined(ctx context.Context, client *chain.EVMClient, hash string) (*chain.TxReceipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, b.ReceiptTimeout)
	defer cancel()
	return client.WaitForReceipt(waitCtx, hash, 2*time.Second)
}

func (b *Bridger) report(msg string) {
	if b.Progress != nil {
		b.Progress(msg)
	}
}
