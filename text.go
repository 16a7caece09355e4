package bytepack

import (
	"strconv"
	"unicode/utf8"
)

// Text is a UTF-8 string preceded by its byte count, written as a
// LengthPrefixSize byte big-endian unsigned integer.
type Text string

var _ Elem[Text] = Text("")

func (t Text) Size() int { return LengthPrefixSize + len(t) }

// Pack writes the byte count and the raw bytes. Text that is not valid UTF-8
// is rejected so that everything Pack emits can be unpacked again.
func (t Text) Pack(buf []byte) error {
	if !utf8.ValidString(string(t)) {
		return &Error{Kind: KindInvalidEncoding, Op: "pack", Type: "Text", Detail: "invalid UTF-8"}
	}
	if err := checkLength[Text](len(t)); err != nil {
		return err
	}
	if err := checkPack[Text](buf, t.Size()); err != nil {
		return err
	}
	putLength(buf, len(t))
	copy(buf[LengthPrefixSize:], t)
	return nil
}

// Unpack reads the byte count and validates the bytes as UTF-8. Invalid
// UTF-8 fails the whole read; nothing is replaced.
func (Text) Unpack(buf []byte) (Text, error) {
	if err := checkUnpack[Text](buf, LengthPrefixSize); err != nil {
		return "", err
	}
	n := getLength(buf)
	if limit := CurrentLimits().MaxTextBytes; n > limit {
		return "", &Error{
			Kind:   KindInvalidEncoding,
			Op:     "unpack",
			Type:   "Text",
			Detail: "byte count " + strconv.Itoa(n) + " exceeds limit " + strconv.Itoa(limit),
		}
	}
	if err := checkUnpack[Text](buf, LengthPrefixSize+n); err != nil {
		return "", err
	}
	raw := buf[LengthPrefixSize : LengthPrefixSize+n]
	if !utf8.Valid(raw) {
		return "", &Error{Kind: KindInvalidEncoding, Op: "unpack", Type: "Text", Detail: "invalid UTF-8"}
	}
	return Text(raw), nil
}

func (t Text) String() string { return string(t) }
