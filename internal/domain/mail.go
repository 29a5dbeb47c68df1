package domain

import "encoding/json"

type MailMessage struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

type IcsExportMailData struct {
	FileName string `json:"fileName"`
	Ics      string `json:"ics"`
}
