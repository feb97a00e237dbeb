package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/kaos_shop/internal/events"
)

func customerForm() map[string]any {
	return map[string]any{
		"name":    "Siti",
		"phone":   "081234567890",
		"address": "Jalan Buah Batu No. 1, Bandung",
		"notes":   "",
	}
}

func TestCheckoutView_Empty(t *testing.T) {
	env := newTestEnv(t)

	resp := decode(t, env.doJSONRequest(http.MethodGet, "/checkout", nil))
	assert.Equal(t, true, resp["empty"])
	assert.Equal(t, "Keranjang Kosong", resp["title"])
	assert.Equal(t, "Anda belum menambahkan produk ke keranjang", resp["message"])
}

func TestCheckoutView_Summary(t *testing.T) {
	env := newTestEnv(t)
	env.doJSONRequest(http.MethodPost, "/cart/items", addItem("1", "Hitam", "M", 2))

	resp := decode(t, env.doJSONRequest(http.MethodGet, "/checkout", nil))
	assert.Equal(t, false, resp["empty"])
	assert.EqualValues(t, 258000, resp["totalPrice"])
	assert.EqualValues(t, 25800, resp["discount"])
	assert.EqualValues(t, 232200, resp["finalTotal"])
	assert.Equal(t, "Rp 232.200", resp["finalTotalLabel"])
}

func TestCheckoutSubmit_Success(t *testing.T) {
	env := newTestEnv(t)
	env.doJSONRequest(http.MethodPost, "/cart/items", addItem("1", "Hitam", "M", 2))

	rec := env.doJSONRequest(http.MethodPost, "/checkout", customerForm())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode(t, rec)
	assert.Equal(t, "Pesanan berhasil! Anda akan diarahkan ke WhatsApp untuk menyelesaikan pembayaran.", resp["message"])
	assert.Equal(t, "/", resp["redirect"])

	order := resp["order"].(map[string]any)
	assert.NotEmpty(t, order["id"])
	assert.EqualValues(t, 258000, order["totalPrice"])
	assert.Equal(t, "Siti", order["customer"].(map[string]any)["name"])
	items := order["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Hitam", items[0].(map[string]any)["color"])

	cart := decode(t, env.doJSONRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, true, cart["empty"])

	assert.Equal(t, []string{events.TypeCartItemAdded, events.TypeOrderSubmitted}, env.Pub.types())
	assert.Equal(t, events.TopicOrder, env.Pub.events[1].Topic)

	rec = env.doJSONRequest(http.MethodPost, "/checkout", customerForm())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckoutSubmit_Invalid(t *testing.T) {
	env := newTestEnv(t)
	env.doJSONRequest(http.MethodPost, "/cart/items", addItem("1", "Hitam", "M", 2))

	form := customerForm()
	form["name"] = ""
	form["phone"] = "12345"

	rec := env.doJSONRequest(http.MethodPost, "/checkout", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	errs := decode(t, rec)["errors"].(map[string]any)
	assert.Equal(t, "Nama harus diisi", errs["name"])
	assert.Equal(t, "Nomor handphone tidak valid", errs["phone"])
	assert.NotContains(t, errs, "address")

	cart := decode(t, env.doJSONRequest(http.MethodGet, "/cart", nil))
	assert.EqualValues(t, 2, cart["totalItems"])
}

func TestCheckoutSubmit_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/checkout", customerForm())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Keranjang Kosong", decode(t, rec)["title"])
}
