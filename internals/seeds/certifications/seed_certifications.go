package certifications

import (
	"context"
	"log"
	"os"

	"videoach_backend/internals/features/coaches/model"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

type GroupSeed struct {
	Name    string   `json:"name"`
	Modules []string `json:"modules"`
}

func SeedCertificationGroupsFromJSON(ctx context.Context, db *gorm.DB, filePath string) error {
	log.Println("📥 Reading", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var seeds []GroupSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return err
	}
	for _, s := range seeds {
		var count int64
		if err := db.WithContext(ctx).Model(&model.CertificationGroupModel{}).
			Where("certification_group_name = ?", s.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		g := model.CertificationGroupModel{CertificationGroupName: s.Name}
		for _, m := range s.Modules {
			g.Modules = append(g.Modules, model.CertificationModuleModel{CertificationModuleName: m})
		}
		if err := db.WithContext(ctx).Create(&g).Error; err != nil {
			return err
		}
		log.Printf("✅ certification group %q seeded", s.Name)
	}
	return nil
}
