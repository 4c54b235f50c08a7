package provider

type sessionMsg struct {
	LoggedOn bool   `json:"logged_on"`
	UserId   string `json:"user_id"`
}

type ticketReq struct {
	Audience string `json:"audience"`
}

type ticketResp struct {
	Handle uint32 `json:"handle"`
}

type notification struct {
	Type   string `json:"type"`
	Handle uint32 `json:"handle"`
	Ticket []byte `json:"ticket"`
	Error  string `json:"error"`
}
