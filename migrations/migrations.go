// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"bizdesk-server/models"
	"bizdesk-server/whatsapp"
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			// Client numbers entered before the deep-link builder existed
			// are stored in whatever shape the owner typed. Canonicalize
			// them once so reminder links stop falling back to text-only.
			ID: "001_canonicalize_client_wa",
			Migrate: func(tx *gorm.DB) error {
				var clients []models.Client
				if err := tx.Select("id", "wa").Find(&clients).Error; err != nil {
					return fmt.Errorf("failed to fetch clients: %w", err)
				}

				for i := range clients {
					canonical := whatsapp.NormalizePhone(clients[i].Wa)
					if canonical == clients[i].Wa {
						continue
					}
					if err := tx.Model(&clients[i]).Update("wa", canonical).Error; err != nil {
						return fmt.Errorf("update client %d: %w", clients[i].ID, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
