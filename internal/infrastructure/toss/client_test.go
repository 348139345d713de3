package toss_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/infrastructure/toss"
	"github.com/jhoicas/academy-api/pkg/logger"
)

const testSecretKey = "test_sk_abc123"

func checkoutParams() ports.CheckoutParams {
	return ports.CheckoutParams{
		OrderID:    "ord-19-x-aa",
		OrderName:  "강의 결제",
		Amount:     55000,
		SuccessURL: "https://app.example.com/payment/success",
		FailURL:    "https://app.example.com/payment/fail",
	}
}

func TestCreateCheckout_EnviaBasicAuthYBody(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"checkout":{"url":"https://pay.toss.im/checkout/abc"}}`))
	}))
	defer srv.Close()

	client := toss.NewClient(srv.URL, testSecretKey, logger.Nop())
	url, err := client.CreateCheckout(context.Background(), checkoutParams())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.toss.im/checkout/abc", url)

	// Secret key como usuario Basic auth con contraseña vacía
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte(testSecretKey+":"))
	assert.Equal(t, wantAuth, gotAuth)

	assert.Equal(t, "CARD", gotBody["method"])
	assert.Equal(t, "ord-19-x-aa", gotBody["orderId"])
	assert.Equal(t, float64(55000), gotBody["amount"])
	assert.Equal(t, "https://app.example.com/payment/success", gotBody["successUrl"])
}

func TestCreateCheckout_IdempotencyKeyFrescaPorLlamada(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"checkout":{"url":"https://pay.toss.im/checkout/abc"}}`))
	}))
	defer srv.Close()

	client := toss.NewClient(srv.URL, testSecretKey, logger.Nop())
	_, err := client.CreateCheckout(context.Background(), checkoutParams())
	require.NoError(t, err)
	_, err = client.CreateCheckout(context.Background(), checkoutParams())
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1], "cada llamada lleva una Idempotency-Key fresca")
}

func TestCreateCheckout_ErrorDelProveedor_GatewayErrorConCuerpoCrudo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"INVALID_REQUEST","message":"orderId 형식이 올바르지 않습니다."}`))
	}))
	defer srv.Close()

	client := toss.NewClient(srv.URL, testSecretKey, logger.Nop())
	_, err := client.CreateCheckout(context.Background(), checkoutParams())

	var gwErr *ports.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.JSONEq(t, `{"code":"INVALID_REQUEST","message":"orderId 형식이 올바르지 않습니다."}`, string(gwErr.Body))
}

func TestCreateCheckout_RespuestaSinURL_RetornaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := toss.NewClient(srv.URL, testSecretKey, logger.Nop())
	_, err := client.CreateCheckout(context.Background(), checkoutParams())
	assert.Error(t, err)
}

func TestConfirm_ParseaApprovedAtYDevuelveCuerpoCrudo(t *testing.T) {
	body := `{"paymentKey":"pk_test_abc","orderId":"ord-19-x-aa","approvedAt":"2024-02-13T12:17:57+09:00","status":"DONE"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/confirm", r.URL.Path)
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "pk_test_abc", got["paymentKey"])
		assert.Equal(t, float64(55000), got["amount"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	client := toss.NewClient(srv.URL, testSecretKey, logger.Nop())
	out, err := client.Confirm(context.Background(), ports.ConfirmParams{
		PaymentKey: "pk_test_abc", OrderID: "ord-19-x-aa", Amount: 55000,
	})
	require.NoError(t, err)

	want, _ := time.Parse(time.RFC3339, "2024-02-13T12:17:57+09:00")
	assert.True(t, out.ApprovedAt.Equal(want))
	assert.JSONEq(t, body, string(out.Raw))
}

func TestConfirm_Rechazo_GatewayErrorPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"NOT_FOUND_PAYMENT"}`))
	}))
	defer srv.Close()

	client := toss.NewClient(srv.URL, testSecretKey, logger.Nop())
	_, err := client.Confirm(context.Background(), ports.ConfirmParams{
		PaymentKey: "pk", OrderID: "ord", Amount: 1,
	})

	var gwErr *ports.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusNotFound, gwErr.StatusCode)
}
