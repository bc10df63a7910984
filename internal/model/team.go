package model

import "time"

// Team : имя уникально
type Team struct {
	UUID        string    `db:"uuid" json:"uuid"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	Members     []string  `db:"-" json:"members,omitempty"`
}

type TeamMember struct {
	TeamUUID string    `db:"team_uuid" json:"team_uuid"`
	UserUUID string    `db:"user_uuid" json:"user_uuid"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}
