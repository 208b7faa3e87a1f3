package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&UserSettings{},
		&Character{},
		&Item{},
		&Currency{},
		&LootTable{},
		&LootTableEntry{},
		&Prompt{},
		&PromptReward{},
		&Submission{},
		&SubmissionCharacter{},
		&OwnedAsset{},
		&AssetLog{},
		&Notification{},
	)
}
