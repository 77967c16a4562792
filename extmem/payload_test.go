package extmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayload_EncodeIsLittleEndian(t *testing.T) {
	require.Equal(t, []byte{
		1, 0, 0, 0,
		2, 0, 0, 0,
		3, 0, 0, 0,
	}, DefaultPayload.Encode())

	require.Equal(t, []byte{
		0x78, 0x56, 0x34, 0x12,
		0xff, 0xff, 0xff, 0xff,
		0, 0, 0, 0,
	}, Payload{0x12345678, 0xffffffff, 0}.Encode())
}

func TestDecodePayload(t *testing.T) {
	data := append(Payload{7, 0, 0xdeadbeef}.Encode(), 0xaa, 0xbb)
	payload, err := DecodePayload(data)
	require.NoError(t, err)
	require.Equal(t, Payload{7, 0, 0xdeadbeef}, payload)

	_, err = DecodePayload(data[:11])
	require.EqualError(t, err, "payload requires 12 bytes, but only 11 were provided")
}
