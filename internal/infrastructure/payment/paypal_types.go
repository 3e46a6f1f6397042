package payment

// paypalTokenResponse is the OAuth2 client-credentials grant response
type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// paypalAmount is a money amount on the wire
type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// paypalCapture is a single capture inside an order
type paypalCapture struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Amount paypalAmount `json:"amount"`
}

// paypalCaptureResponse is the response to capturing an approved order
type paypalCaptureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []paypalCapture `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// paypalRefundRequest asks for a partial or full refund of a capture
type paypalRefundRequest struct {
	Amount paypalAmount `json:"amount"`
}

// paypalRefundResponse is the response to a refund request
type paypalRefundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// paypalErrorResponse is the error envelope returned by the REST API
type paypalErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
