package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// NativeDecimals is the number of fractional digits in one whole native unit.
const NativeDecimals = 24

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAmountOverflow = errors.New("amount exceeds 128 bits")
	ErrAmountNegative = errors.New("amount would be negative")
)

// Amount is an unsigned ledger quantity in the smallest native unit.
// Values never exceed MaxAmount (2^128-1).
type Amount uint256.Int

// MaxAmount is the largest representable ledger quantity.
var MaxAmount = func() Amount {
	v := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	v.SubUint64(v, 1)
	return Amount(*v)
}()

func NewAmount(n uint64) Amount {
	return Amount(*uint256.NewInt(n))
}

// AmountFromUint256 narrows v to the 128-bit ledger range.
func AmountFromUint256(v *uint256.Int) (Amount, error) {
	if v.BitLen() > 128 {
		return Amount{}, ErrAmountOverflow
	}
	return Amount(*v), nil
}

// ParseAmount parses a base-10 string of digits.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Amount{}, fmt.Errorf("%w: %q is not a base-10 integer", ErrInvalidAmount, s)
		}
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	a, err := AmountFromUint256(v)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return a, nil
}

// MustParseAmount is ParseAmount for constants and tests.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Uint256 returns a copy of the underlying word.
func (a Amount) Uint256() *uint256.Int {
	v := uint256.Int(a)
	return &v
}

func (a Amount) String() string {
	return a.Uint256().Dec()
}

func (a Amount) IsZero() bool {
	return a.Uint256().IsZero()
}

func (a Amount) Cmp(b Amount) int {
	return a.Uint256().Cmp(b.Uint256())
}

func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

// Add returns a+b or ErrAmountOverflow.
func (a Amount) Add(b Amount) (Amount, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a.Uint256(), b.Uint256())
	if overflow {
		return Amount{}, ErrAmountOverflow
	}
	return AmountFromUint256(sum)
}

// Sub returns a-b or ErrAmountNegative.
func (a Amount) Sub(b Amount) (Amount, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a.Uint256(), b.Uint256())
	if underflow {
		return Amount{}, ErrAmountNegative
	}
	return Amount(*diff), nil
}

// Native renders the amount in whole native units.
func (a Amount) Native() decimal.Decimal {
	return decimal.NewFromBigInt(a.Uint256().ToBig(), -NativeDecimals)
}

// MarshalJSON encodes the amount as a quoted base-10 string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// UnmarshalJSON accepts a quoted base-10 string or a bare JSON integer.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		s = unquoted
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements the driver.Valuer interface
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements the sql.Scanner interface
func (a *Amount) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = Amount{}
		return nil
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	case int64:
		if v < 0 {
			return ErrAmountNegative
		}
		*a = NewAmount(uint64(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Amount", value)
	}
}

func (a *Amount) scanString(s string) error {
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
