package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/go-sod/sleepq/internal/byteutil"
)

// Fingerprint is a short digest of the learned weights. Two artifacts with
// the same fingerprint make the same predictions for the same transformer.
func (a *Artifact) Fingerprint() string {
	buffer := byteutil.GetBytesBuf()
	defer byteutil.PutBytesBuf(buffer)
	for _, values := range [][]float64{a.Weights.Coef, a.Weights.Intercept} {
		for i := range values {
			buffer.WriteString(strconv.FormatFloat(values[i], 'g', -1, 64))
			buffer.WriteByte(',')
		}
		buffer.WriteByte(';')
	}
	sum := sha256.Sum256(buffer.Bytes())
	return hex.EncodeToString(sum[:8])
}
