package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/academy-api/pkg/phone"
)

// Kakao entrega los números con prefijo internacional ("+82 10-1234-5678");
// la app los guarda en formato local coreano ("010-1234-5678").
func TestFormatKorean_PrefijoInternacional(t *testing.T) {
	assert.Equal(t, "010-1234-5678", phone.FormatKorean("+82 10-1234-5678"))
}

func TestFormatKorean_PrefijoConGuion(t *testing.T) {
	assert.Equal(t, "010-1234-5678", phone.FormatKorean("+82-10-1234-5678"))
}

func TestFormatKorean_YaLocal_NormalizaGuiones(t *testing.T) {
	assert.Equal(t, "010-1234-5678", phone.FormatKorean("01012345678"))
}

func TestFormatKorean_DiezDigitos(t *testing.T) {
	// Formato antiguo 3-3-4
	assert.Equal(t, "010-123-4567", phone.FormatKorean("010-123-4567"))
}

func TestFormatKorean_Vacio(t *testing.T) {
	assert.Empty(t, phone.FormatKorean(""))
	assert.Empty(t, phone.FormatKorean("   "))
}

func TestFormatKorean_LongitudInesperada_SeDevuelveTalCual(t *testing.T) {
	assert.Equal(t, "12345", phone.FormatKorean("12345"))
}
