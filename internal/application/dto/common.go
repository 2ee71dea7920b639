package dto

// Envelope sobre uniforme de toda respuesta del boundary: la UI siempre
// recibe {success, data | error} y nunca una excepción interna sin moldear.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo cuerpo de error dentro del Envelope.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK construye un Envelope exitoso.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail construye un Envelope de error.
func Fail(code, message string) Envelope {
	return Envelope{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}
