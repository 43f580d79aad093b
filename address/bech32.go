package address

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingPrefix is returned when the textual form lacks the
	// prefix separator.
	ErrMissingPrefix = errors.New("address is missing a network prefix")

	// ErrInvalidCharacter is returned when the data part contains a
	// character outside the encoding charset.
	ErrInvalidCharacter = errors.New("invalid character in address")

	// ErrInvalidChecksum is returned when the checksum does not verify.
	ErrInvalidChecksum = errors.New("address checksum mismatch")

	// ErrMixedCase is returned when the address mixes upper and lower
	// case characters, which the checksum cannot cover unambiguously.
	ErrMixedCase = errors.New("address must not mix upper and lower case")
)

// charset is the set of characters used in the data part, indexed by
// their 5-bit value.
const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// checksumLen is the number of 5-bit groups the 40-bit checksum spans.
const checksumLen = 8

// polyMod computes the BCH checksum state over a sequence of 5-bit
// values. A correctly checksummed sequence reduces to zero.
func polyMod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := c >> 35
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)

		if c0&0x01 != 0 {
			c ^= 0x98f2bc8e61
		}
		if c0&0x02 != 0 {
			c ^= 0x79b76d99e2
		}
		if c0&0x04 != 0 {
			c ^= 0xf33e5fb3c4
		}
		if c0&0x08 != 0 {
			c ^= 0xae2eabe2a8
		}
		if c0&0x10 != 0 {
			c ^= 0x1e4f43e470
		}
	}

	return c ^ 1
}

// expandPrefix maps the prefix into the 5-bit values covered by the
// checksum: the low five bits of every character, followed by a zero
// separator.
func expandPrefix(prefix string) []byte {
	out := make([]byte, 0, len(prefix)+1)
	for i := 0; i < len(prefix); i++ {
		out = append(out, prefix[i]&0x1f)
	}

	return append(out, 0)
}

// convertBits regroups the data from frombits-sized groups into
// tobits-sized groups. With pad set, a final partial group is padded
// with zero bits; without it, any non-zero padding is rejected.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	var (
		acc  uint
		bits uint
	)
	maxv := byte(1<<toBits - 1)
	out := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)

	for _, b := range data {
		acc = acc<<fromBits | uint(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte(acc>>bits)&maxv)
		}
	}

	switch {
	case pad && bits > 0:
		out = append(out, byte(acc<<(toBits-bits))&maxv)

	case !pad && (bits >= fromBits || byte(acc<<(toBits-bits))&maxv != 0):
		return nil, fmt.Errorf("%w: invalid padding", ErrInvalidChecksum)
	}

	return out, nil
}

// encode produces the checksummed textual form of an address.
func encode(prefix string, version Version, payload []byte) string {
	raw := make([]byte, 0, len(payload)+1)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)

	// Padding cannot fail when regrouping 8-bit data.
	data, _ := convertBits(raw, 8, 5, true)

	values := expandPrefix(prefix)
	values = append(values, data...)
	values = append(values, make([]byte, checksumLen)...)
	checksum := polyMod(values)

	data = append(data, make([]byte, checksumLen)...)
	for i := 0; i < checksumLen; i++ {
		data[len(data)-checksumLen+i] = byte(
			checksum >> (5 * uint(checksumLen-1-i)) & 0x1f,
		)
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte(':')
	for _, d := range data {
		sb.WriteByte(charset[d])
	}

	return sb.String()
}

// decode splits and verifies the textual form, returning the prefix,
// version and payload.
func decode(addr string) (string, Version, []byte, error) {
	if strings.ToLower(addr) != addr && strings.ToUpper(addr) != addr {
		return "", 0, nil, ErrMixedCase
	}
	addr = strings.ToLower(addr)

	sep := strings.LastIndexByte(addr, ':')
	if sep < 1 || sep+1 >= len(addr) {
		return "", 0, nil, ErrMissingPrefix
	}
	prefix, dataPart := addr[:sep], addr[sep+1:]

	if len(dataPart) < checksumLen+1 {
		return "", 0, nil, fmt.Errorf("%w: data part too short",
			ErrInvalidChecksum)
	}

	data := make([]byte, 0, len(dataPart))
	for i := 0; i < len(dataPart); i++ {
		v := strings.IndexByte(charset, dataPart[i])
		if v < 0 {
			return "", 0, nil, fmt.Errorf("%w: %q",
				ErrInvalidCharacter, dataPart[i])
		}
		data = append(data, byte(v))
	}

	values := expandPrefix(prefix)
	values = append(values, data...)
	if polyMod(values) != 0 {
		return "", 0, nil, ErrInvalidChecksum
	}

	raw, err := convertBits(data[:len(data)-checksumLen], 5, 8, false)
	if err != nil {
		return "", 0, nil, err
	}
	if len(raw) < 1 {
		return "", 0, nil, fmt.Errorf("%w: empty payload",
			ErrInvalidPayload)
	}

	return prefix, Version(raw[0]), raw[1:], nil
}
