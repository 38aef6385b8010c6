package types

import "time"

// Report priorities
const (
	PriorityNormale  = "normale"
	PriorityHaute    = "haute"
	PriorityCritique = "critique"
)

// Report statuses
const (
	StatusRecu     = "recu"
	StatusEnCours  = "en-cours"
	StatusClasse   = "classe"
	StatusTransmis = "transmis"
)

// Platform roles that are not agent roles
const (
	RoleCitoyen    = "citoyen"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// Platform accounts. Role is either "citoyen", an agent role from the
// routing table, "admin" or "super-admin".
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Email        string `gorm:"size:256;unique;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	Name         string `gorm:"size:128"`
	Role         string `gorm:"size:64;not null;default:citoyen"`
	CreatedAt    time.Time
}

// Citizen signalements
type Report struct {
	ID          uint64 `gorm:"primaryKey"`
	Code        string `gorm:"size:64;unique;not null"` // anonymous tracking code
	Category    string `gorm:"size:64;index;not null"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text;not null"`
	Location    string `gorm:"size:255"`
	Priority    string `gorm:"size:16;index;default:normale"`
	Status      string `gorm:"size:32;default:recu"`
	Anonymous   bool   `gorm:"default:false"`
	ReporterID  *uint64
	AIScore     *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Reporter    *User `gorm:"foreignKey:ReporterID"`
}

// Protected project deposits (content fingerprint + timestamp)
type Protection struct {
	ID          uint64 `gorm:"primaryKey"`
	OwnerID     uint64 `gorm:"index;not null"`
	Title       string `gorm:"size:255;not null"`
	Fingerprint string `gorm:"size:32;index;not null"`
	ContentLen  uint32 `gorm:"not null"`
	CreatedAt   time.Time
	Owner       User `gorm:"foreignKey:OwnerID"`
}

// Runtime settings (discord token, channel mappings, etc)
type Setting struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:512"`
}

// Journal of native alerts raised by the alert bot
type AlertLog struct {
	ID        uint64 `gorm:"primaryKey"`
	CaseID    string `gorm:"size:64;index;not null"`
	Category  string `gorm:"size:64"`
	Role      string `gorm:"size:64"`
	ChannelID string `gorm:"size:64"`
	MessageID string `gorm:"size:64"`
	CreatedAt time.Time
}
