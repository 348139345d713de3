package billing

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewOrderID genera el identificador público de una orden:
// "ord-<lectureId>-<millis en base36>-<sufijo aleatorio>".
// El timestamp lo hace ordenable y el sufijo evita colisiones de dos órdenes
// creadas en el mismo milisegundo.
func NewOrderID(lectureID int, now time.Time) string {
	var buf [2]byte
	_, _ = rand.Read(buf[:])
	return "ord-" + strconv.Itoa(lectureID) + "-" +
		strconv.FormatInt(now.UnixMilli(), 36) + "-" +
		hex.EncodeToString(buf[:])
}
