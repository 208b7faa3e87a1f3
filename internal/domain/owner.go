package domain

import (
	"fmt"
	"time"
)

type OwnerType string

const (
	OwnerUser      OwnerType = "User"
	OwnerCharacter OwnerType = "Character"
)

func (t OwnerType) Valid() bool {
	return t == OwnerUser || t == OwnerCharacter
}

type Owner struct {
	Type OwnerType `json:"type"`
	ID   uint      `json:"id"`
}

func UserOwner(id uint) Owner {
	return Owner{Type: OwnerUser, ID: id}
}

func CharacterOwner(id uint) Owner {
	return Owner{Type: OwnerCharacter, ID: id}
}

func (o Owner) String() string {
	return fmt.Sprintf("%s #%d", o.Type, o.ID)
}

func (o Owner) IsCharacter() bool {
	return o.Type == OwnerCharacter
}

// OwnedAsset is the current balance an owner holds of one asset.
type OwnedAsset struct {
	Owner     Owner     `json:"owner"`
	Asset     AssetKey  `json:"asset"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssetLog is the append-only audit record written for every credit.
type AssetLog struct {
	ID            uint      `json:"id"`
	CorrelationID string    `json:"correlation_id"`
	SenderID      uint      `json:"sender_id"`
	Recipient     Owner     `json:"recipient"`
	Asset         AssetKey  `json:"asset"`
	Quantity      int       `json:"quantity"`
	LogType       string    `json:"log_type"`
	Data          string    `json:"data"`
	CreatedAt     time.Time `json:"created_at"`
}
