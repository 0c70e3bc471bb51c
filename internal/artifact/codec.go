package artifact

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	xdr "github.com/davecgh/go-xdr/xdr2"

	"github.com/go-sod/sleepq/internal/byteutil"
)

// Blob layout: magic | schema version | CRC-32 of payload | XDR payload.
var magic = [4]byte{'S', 'L', 'P', 'Q'}

const headerLen = 12

func Encode(a *Artifact) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to encode invalid artifact: %w", err)
	}
	payload := byteutil.GetBytesBuf()
	defer byteutil.PutBytesBuf(payload)
	if _, err := xdr.Marshal(payload, a); err != nil {
		return nil, fmt.Errorf("xdr marshal: %w", err)
	}

	blob := make([]byte, headerLen, headerLen+payload.Len())
	copy(blob, magic[:])
	binary.BigEndian.PutUint32(blob[4:8], SchemaVersion)
	binary.BigEndian.PutUint32(blob[8:12], crc32.ChecksumIEEE(payload.Bytes()))
	return append(blob, payload.Bytes()...), nil
}

// Decode returns a *CorruptError for any blob that is not a valid artifact
// of the current schema version.
func Decode(blob []byte) (*Artifact, error) {
	if len(blob) < headerLen {
		return nil, &CorruptError{Err: fmt.Errorf("blob of %d bytes is shorter than the header", len(blob))}
	}
	if !bytes.Equal(blob[:4], magic[:]) {
		return nil, &CorruptError{Err: fmt.Errorf("bad magic %q", blob[:4])}
	}
	if v := binary.BigEndian.Uint32(blob[4:8]); v != SchemaVersion {
		return nil, &CorruptError{Err: fmt.Errorf("schema version %d, expected %d", v, SchemaVersion)}
	}
	payload := blob[headerLen:]
	if sum := crc32.ChecksumIEEE(payload); sum != binary.BigEndian.Uint32(blob[8:12]) {
		return nil, &CorruptError{Err: fmt.Errorf("checksum mismatch")}
	}

	var a Artifact
	n, err := xdr.Unmarshal(bytes.NewReader(payload), &a)
	if err != nil {
		return nil, &CorruptError{Err: fmt.Errorf("xdr unmarshal: %w", err)}
	}
	if n != len(payload) {
		return nil, &CorruptError{Err: fmt.Errorf("%d trailing bytes", len(payload)-n)}
	}
	if err := a.Validate(); err != nil {
		return nil, &CorruptError{Err: err}
	}
	return &a, nil
}
