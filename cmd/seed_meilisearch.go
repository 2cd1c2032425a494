//go:build ignore

// Script seed gazetteer vào Meilisearch cho backend gợi ý.
// Chạy: go run cmd/seed_meilisearch.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/address-resolver/app/config"
	"github.com/address-resolver/internal/gazetteer"
)

// adminUnitDoc document đẩy vào Meilisearch
type adminUnitDoc struct {
	AdminID  string   `json:"admin_id"`
	ParentID string   `json:"parent_id,omitempty"`
	Level    int      `json:"level"`
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases"`
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal("Lỗi load config:", err)
	}

	gaz, err := gazetteer.LoadFile(cfg.GazetteerPath)
	if err != nil {
		log.Fatal("Không load được gazetteer:", err)
	}

	meiliClient := meilisearch.New(cfg.MeiliHost, meilisearch.WithAPIKey(cfg.MeiliAPIKey))

	health, err := meiliClient.Health()
	if err != nil {
		log.Fatal("Không thể kết nối Meilisearch:", err)
	}
	fmt.Printf("Meilisearch status: %s\n", health.Status)

	index := meiliClient.Index(cfg.MeiliIndex)

	fmt.Println("Đang cấu hình Meilisearch index settings...")
	settings := &meilisearch.Settings{
		SearchableAttributes: []string{"name", "aliases"},
		FilterableAttributes: []string{"level", "parent_id", "admin_id"},
		SortableAttributes:   []string{"level", "name"},
	}

	task, err := index.UpdateSettings(settings)
	if err != nil {
		log.Fatal("Lỗi cập nhật settings:", err)
	}
	waitForTask(meiliClient, task.TaskUID)

	documents := collectDocuments(gaz)
	fmt.Printf("Đang seed %d đơn vị hành chính vào Meilisearch...\n", len(documents))

	batchSize := 1000
	for i := 0; i < len(documents); i += batchSize {
		end := i + batchSize
		if end > len(documents) {
			end = len(documents)
		}
		task, err := index.AddDocuments(documents[i:end], "admin_id")
		if err != nil {
			log.Fatal("Lỗi add documents:", err)
		}
		waitForTask(meiliClient, task.TaskUID)
		fmt.Printf("Đã seed %d/%d\n", end, len(documents))
	}

	p, d, w := gaz.Counts()
	fmt.Printf("Hoàn thành! Tỉnh: %d, Quận/Huyện: %d, Phường/Xã: %d\n", p, d, w)
}

// collectDocuments gom tất cả đơn vị ba cấp thành documents
func collectDocuments(gaz *gazetteer.Gazetteer) []adminUnitDoc {
	var docs []adminUnitDoc

	for _, id := range gaz.ProvinceIDs() {
		unit, _ := gaz.Province(id)
		docs = append(docs, toDoc(unit, gazetteer.LevelProvince))
	}
	for _, id := range gaz.DistrictIDs() {
		unit, _ := gaz.District(id)
		docs = append(docs, toDoc(unit, gazetteer.LevelDistrict))
		for _, wardID := range gaz.WardsOf(id) {
			ward, _ := gaz.Ward(wardID)
			docs = append(docs, toDoc(ward, gazetteer.LevelWard))
		}
	}
	return docs
}

func toDoc(unit *gazetteer.Unit, level int) adminUnitDoc {
	return adminUnitDoc{
		AdminID:  unit.ID,
		ParentID: unit.ParentID,
		Level:    level,
		Name:     unit.Name,
		Aliases:  unit.Aliases,
	}
}

// waitForTask chờ task Meilisearch hoàn thành
func waitForTask(client meilisearch.ServiceManager, taskUID int64) {
	for {
		taskInfo, err := client.GetTask(taskUID)
		if err != nil {
			log.Fatal("Lỗi check task status:", err)
		}
		if taskInfo.Status == "succeeded" {
			return
		}
		if taskInfo.Status == "failed" {
			log.Fatalf("Task %d thất bại: %v", taskUID, taskInfo.Error)
		}
		time.Sleep(1 * time.Second)
	}
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config/config.yaml"
}
