package extmem

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// PayloadSize is the number of bytes a Payload occupies in device memory
const PayloadSize = 12

// Payload is the fixed record written through the exporting resource and read back through the
// importing one. It is always encoded as three little-endian uint32 values, regardless of host
// byte order.
type Payload [3]uint32

// DefaultPayload is written when no other payload has been configured
var DefaultPayload = Payload{1, 2, 3}

// Encode returns the payload's 12-byte little-endian encoding
func (p Payload) Encode() []byte {
	buf := make([]byte, PayloadSize)
	for i, value := range p {
		binary.LittleEndian.PutUint32(buf[i*4:], value)
	}
	return buf
}

// DecodePayload reads a payload from the first 12 bytes of data
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if len(data) < PayloadSize {
		return p, errors.Newf("payload requires %d bytes, but only %d were provided", PayloadSize, len(data))
	}

	for i := range p {
		p[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return p, nil
}
