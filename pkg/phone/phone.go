package phone

import "strings"

// FormatKorean normaliza un número de teléfono al formato local coreano.
// Kakao entrega los números como "+82 10-1234-5678"; la app los guarda como
// "010-1234-5678". Si el número no trae prefijo internacional se devuelve
// con guiones normalizados.
func FormatKorean(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Prefijo internacional de Corea: +82 / 82 seguido del número sin el 0 inicial.
	if strings.HasPrefix(s, "+82") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "+82"))
		s = strings.TrimPrefix(s, "-")
		s = strings.TrimSpace(s)
		if !strings.HasPrefix(s, "0") {
			s = "0" + s
		}
	}

	digits := keepDigits(s)
	if len(digits) == 11 {
		// 010-1234-5678
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
	if len(digits) == 10 {
		// 02-1234-5678 o 010 con 10 dígitos antiguos: 3-3-4
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	}
	return s
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
