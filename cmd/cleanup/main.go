// Retention job for extracted images. Intended to run from cron:
//
//	0 2 * * * /usr/local/bin/cleanup >> /var/log/portal_cleanup.log 2>&1
//
// Images older than two days are removed, blob first, then the record.
package main

import (
	"Employee-Portal-Backend/cmd/config"
	"Employee-Portal-Backend/internal/utils"
	"Employee-Portal-Backend/internal/utils/storage"
	"Employee-Portal-Backend/pkg/photo"
	"Employee-Portal-Backend/pkg/user"
	"context"
	"log"
	"time"
)

const imageMaxAge = 48 * time.Hour

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	s3 := storage.NewAwsS3()
	photoRepository := photo.NewPhotoRepository(db)
	userRepository := user.NewUserRepository(db)
	photoService := photo.NewPhotoService(photoRepository, userRepository, photo.NewArchiveUnwrapper(""), s3)

	deleted, err := photoService.CleanupOldImages(context.Background(), imageMaxAge)
	if err != nil {
		log.Fatalf("cleanup failed: %v", err)
	}

	log.Printf("cleanup complete, deleted %d images", deleted)
}
