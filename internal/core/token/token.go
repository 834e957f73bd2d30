package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxAmount is the largest amount representable by the platform.
// Any arithmetic result above this is a fatal error for the calling action.
const MaxAmount int64 = (1 << 62) - 1

// MaxPrecision is the largest supported number of decimal places.
const MaxPrecision uint8 = 18

// MaxSymbolLen is the longest allowed symbol code.
const MaxSymbolLen = 7

var (
	ErrBadSymbolCode = errors.New("invalid symbol code")
	ErrBadPrecision  = errors.New("invalid symbol precision")
	ErrBadAmount     = errors.New("invalid asset amount")
)

// SymbolCode is a 1-7 character uppercase token code packed into a uint64,
// one byte per character, least significant byte first.
type SymbolCode uint64

// ParseSymbolCode parses a symbol code string such as "EOS" or "SWAP".
func ParseSymbolCode(s string) (SymbolCode, error) {
	if len(s) == 0 || len(s) > MaxSymbolLen {
		return 0, ErrBadSymbolCode
	}
	var raw uint64
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return 0, ErrBadSymbolCode
		}
		raw = raw<<8 | uint64(c)
	}
	return SymbolCode(raw), nil
}

// MustSymbolCode parses a symbol code and panics on error. For tests and constants.
func MustSymbolCode(s string) SymbolCode {
	sc, err := ParseSymbolCode(s)
	if err != nil {
		panic(fmt.Sprintf("token: bad symbol code %q", s))
	}
	return sc
}

// IsValid reports whether the packed code consists of 1-7 uppercase letters
// with no embedded zero bytes.
func (sc SymbolCode) IsValid() bool {
	raw := uint64(sc)
	if raw == 0 {
		return false
	}
	seenEnd := false
	for i := 0; i < 8; i++ {
		c := byte(raw >> (8 * i))
		if c == 0 {
			seenEnd = true
			continue
		}
		if seenEnd || c < 'A' || c > 'Z' || i >= MaxSymbolLen {
			return false
		}
	}
	return true
}

func (sc SymbolCode) String() string {
	var b strings.Builder
	for raw := uint64(sc); raw != 0; raw >>= 8 {
		b.WriteByte(byte(raw))
	}
	return b.String()
}

// MarshalText renders the code as its letters, so JSON carries "EOS" rather
// than the packed integer.
func (sc SymbolCode) MarshalText() ([]byte, error) {
	return []byte(sc.String()), nil
}

func (sc *SymbolCode) UnmarshalText(text []byte) error {
	parsed, err := ParseSymbolCode(string(text))
	if err != nil {
		return err
	}
	*sc = parsed
	return nil
}

// Symbol is a token code plus its decimal precision.
type Symbol struct {
	Code      SymbolCode `json:"code"`
	Precision uint8      `json:"precision"`
}

// NewSymbol builds a symbol from a code string and precision.
func NewSymbol(code string, precision uint8) (Symbol, error) {
	sc, err := ParseSymbolCode(code)
	if err != nil {
		return Symbol{}, err
	}
	if precision > MaxPrecision {
		return Symbol{}, ErrBadPrecision
	}
	return Symbol{Code: sc, Precision: precision}, nil
}

// MustSymbol is NewSymbol that panics on error. For tests and constants.
func MustSymbol(code string, precision uint8) Symbol {
	s, err := NewSymbol(code, precision)
	if err != nil {
		panic(err)
	}
	return s
}

// Raw packs the symbol into a single uint64: code shifted left one byte,
// precision in the low byte.
func (s Symbol) Raw() uint64 {
	return uint64(s.Code)<<8 | uint64(s.Precision)
}

func (s Symbol) IsValid() bool {
	return s.Code.IsValid() && s.Precision <= MaxPrecision
}

func (s Symbol) String() string {
	return strconv.Itoa(int(s.Precision)) + "," + s.Code.String()
}

// TokenIdentity names a fungible token: the account that issues it plus its
// symbol. Two assets are the same token only if authority, code and precision
// all match.
type TokenIdentity struct {
	Authority string `json:"authority"`
	Symbol    Symbol `json:"symbol"`
}

func (t TokenIdentity) IsValid() bool {
	return t.Authority != "" && t.Symbol.IsValid()
}

func (t TokenIdentity) Equal(o TokenIdentity) bool {
	return t.Authority == o.Authority && t.Symbol == o.Symbol
}

func (t TokenIdentity) String() string {
	return t.Symbol.String() + "@" + t.Authority
}

// Asset is a signed count of minimal units of a symbol.
type Asset struct {
	Amount int64  `json:"amount"`
	Symbol Symbol `json:"symbol"`
}

func NewAsset(amount int64, symbol Symbol) Asset {
	return Asset{Amount: amount, Symbol: symbol}
}

// IsValid reports whether the symbol is well formed and the amount is within
// the platform range.
func (a Asset) IsValid() bool {
	return a.Symbol.IsValid() && a.Amount <= MaxAmount && a.Amount >= -MaxAmount
}

// Negated returns the asset with the amount sign flipped.
func (a Asset) Negated() Asset {
	return Asset{Amount: -a.Amount, Symbol: a.Symbol}
}

// String renders the asset the way token contracts print them, e.g. "1.0050 EOS".
func (a Asset) String() string {
	amt := a.Amount
	sign := ""
	if amt < 0 {
		sign = "-"
		amt = -amt
	}
	p := int64(1)
	for i := uint8(0); i < a.Symbol.Precision; i++ {
		p *= 10
	}
	whole := amt / p
	if a.Symbol.Precision == 0 {
		return fmt.Sprintf("%s%d %s", sign, whole, a.Symbol.Code)
	}
	frac := amt % p
	return fmt.Sprintf("%s%d.%0*d %s", sign, whole, int(a.Symbol.Precision), frac, a.Symbol.Code)
}

// ExtendedAsset is an asset tagged with the authority that issued it.
type ExtendedAsset struct {
	Quantity  Asset  `json:"quantity"`
	Authority string `json:"authority"`
}

func NewExtendedAsset(amount int64, token TokenIdentity) ExtendedAsset {
	return ExtendedAsset{
		Quantity:  Asset{Amount: amount, Symbol: token.Symbol},
		Authority: token.Authority,
	}
}

func (e ExtendedAsset) IsValid() bool {
	return e.Authority != "" && e.Quantity.IsValid()
}

// Token returns the token identity of the extended asset.
func (e ExtendedAsset) Token() TokenIdentity {
	return TokenIdentity{Authority: e.Authority, Symbol: e.Quantity.Symbol}
}

func (e ExtendedAsset) Negated() ExtendedAsset {
	return ExtendedAsset{Quantity: e.Quantity.Negated(), Authority: e.Authority}
}

func (e ExtendedAsset) String() string {
	return e.Quantity.String() + "@" + e.Authority
}
