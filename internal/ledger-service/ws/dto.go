package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// Channel: obrigatório para subscribe/unsubscribe ("All" recebe tudo)
type ClientMsg struct {
	Type    string `json:"type"`    // subscribe | unsubscribe | ping
	Channel string `json:"channel"` // requerido em subscribe/unsubscribe
}

// LedgerUpdate representa uma notificação de mudança do ledger enviada
// para clientes WebSocket (o payload é o evento de liquidação)
type LedgerUpdate struct {
	Channel string      `json:"channel"`
	Payload interface{} `json:"payload"`
}
