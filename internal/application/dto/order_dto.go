package dto

// CreateOrderRequest entrada para crear una orden de compra de una lecture.
// Amount es opcional: si viene > 0 se respeta (precio promocional aplicado en
// el cliente), si no se usa el precio de catálogo.
type CreateOrderRequest struct {
	LectureID int   `json:"lectureId" validate:"required,gt=0"`
	Amount    int64 `json:"amount" validate:"omitempty,min=0"`
}

// CreateOrderResponse salida de la creación. Para órdenes gratuitas Free es
// true y Redirect apunta directo a la página de éxito (sin pasarela).
type CreateOrderResponse struct {
	OK       bool   `json:"ok"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount,omitempty"`
	Title    string `json:"title,omitempty"`
	Free     bool   `json:"free,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
