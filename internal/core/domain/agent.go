package domain

// DeliveryAgent carries the slice of the agent profile the settlement engine
// needs. Registration, documents and availability live outside this engine.
type DeliveryAgent struct {
	AgentID  string `json:"agentID"` // Primary key (UUID)
	Name     string `json:"name"`
	HomeCity string `json:"homeCity"` // Commission locality reference
	IsActive bool   `json:"isActive"`
	AuditFields
}
