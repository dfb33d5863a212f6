package object

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// SignatureHeader is the commit header holding an SSH signature.
const SignatureHeader = "sshsig"

const signaturePrefix = "sshsig-v1"

var (
	ErrUnsigned     = errors.New("commit is not signed")
	ErrBadSignature = errors.New("bad commit signature")
)

// Signer signs canonical commit payload bytes and returns the encoded
// signature stored in the commit's SignatureHeader.
type Signer func(payload []byte) (string, error)

// NewSSHSigner returns a Signer producing
// "sshsig-v1:<format>:<base64 public key>:<base64 signature>".
func NewSSHSigner(key ssh.Signer) Signer {
	pubB64 := base64.StdEncoding.EncodeToString(key.PublicKey().Marshal())
	return func(payload []byte) (string, error) {
		sig, err := key.Sign(rand.Reader, payload)
		if err != nil {
			return "", err
		}
		sigB64 := base64.StdEncoding.EncodeToString(sig.Blob)
		return fmt.Sprintf("%s:%s:%s:%s", signaturePrefix, sig.Format, pubB64, sigB64), nil
	}
}

// SigningPayload returns the bytes that are signed for a commit: its
// serialization without the signature header.
func (c *Commit) SigningPayload() []byte {
	kv := c.Headers().Clone()
	kv.Del(SignatureHeader)
	return kv.Bytes()
}

// Sign signs the commit and stores the result in SignatureHeader,
// replacing any previous signature.
func (c *Commit) Sign(signer Signer) error {
	sig, err := signer(c.SigningPayload())
	if err != nil {
		return fmt.Errorf("sign commit: %w", err)
	}
	c.Headers().Set(SignatureHeader, sig)
	return nil
}

// VerifySSH checks the commit's SSH signature against its payload and
// returns the embedded public key. Callers decide whether that key is
// trusted.
func (c *Commit) VerifySSH() (ssh.PublicKey, error) {
	encoded, ok := c.Headers().Get(SignatureHeader)
	if !ok {
		return nil, ErrUnsigned
	}
	parts := strings.Split(encoded, ":")
	if len(parts) != 4 || parts[0] != signaturePrefix {
		return nil, fmt.Errorf("%w: unrecognized encoding", ErrBadSignature)
	}
	pubRaw, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %w", ErrBadSignature, err)
	}
	pub, err := ssh.ParsePublicKey(pubRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %w", ErrBadSignature, err)
	}
	blob, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %w", ErrBadSignature, err)
	}
	sig := &ssh.Signature{Format: parts[1], Blob: blob}
	if err := pub.Verify(c.SigningPayload(), sig); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	return pub, nil
}
