// 手动触发课程结构排序值压实脚本
//
// 正常情况下章节/课时的 sortOrder 在每次重排事务内被重写为 0..n-1。
// 历史数据导入或手工改库可能留下空洞与重复，此脚本按现有顺序一次性压实。
//
// 用法: go run scripts/resequence.go
package main

import (
	"log"

	"lms_admin_backend/internal/config"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/pkg/database"
	"lms_admin_backend/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("压实章节排序...")
	if err := resequenceSections(db); err != nil {
		log.Fatalf("章节压实失败: %v", err)
	}

	log.Println("压实课时排序...")
	if err := resequenceLessons(db); err != nil {
		log.Fatalf("课时压实失败: %v", err)
	}

	log.Println("完成！")
}

func resequenceSections(db *gorm.DB) error {
	var courses []model.Course
	if err := db.Find(&courses).Error; err != nil {
		return err
	}
	for _, course := range courses {
		err := db.Transaction(func(tx *gorm.DB) error {
			var sections []model.Section
			if err := tx.Where("course_id = ?", course.ID).
				Order("sort_order asc, created_at asc").Find(&sections).Error; err != nil {
				return err
			}
			for i, section := range sections {
				if section.SortOrder == i {
					continue
				}
				if err := tx.Model(&model.Section{}).Where("id = ?", section.ID).
					Update("sort_order", i).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func resequenceLessons(db *gorm.DB) error {
	var sections []model.Section
	if err := db.Find(&sections).Error; err != nil {
		return err
	}
	for _, section := range sections {
		err := db.Transaction(func(tx *gorm.DB) error {
			var lessons []model.Lesson
			if err := tx.Where("section_id = ?", section.ID).
				Order("sort_order asc, created_at asc").Find(&lessons).Error; err != nil {
				return err
			}
			for i, lesson := range lessons {
				if lesson.SortOrder == i {
					continue
				}
				if err := tx.Model(&model.Lesson{}).Where("id = ?", lesson.ID).
					Update("sort_order", i).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
