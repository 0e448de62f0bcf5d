package main

import (
	"context"
	"log"
	"os"
	"time"

	"aterbruk-backend/internal/auth"
	"aterbruk-backend/internal/config"
	"aterbruk-backend/internal/db"
	"aterbruk-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	now := time.Now().In(cfg.Timezone)
	year := now.Year()

	recycleEntries := []models.Recycle{
		{
			MapItem: models.MapItem{
				Latitude:     ptrFloat(59.858227),
				Longitude:    ptrFloat(17.632252),
				Name:         "Kvarteret Hugin",
				Organisation: "Uppsala kommun",
				Year:         ptrInt(year),
				Address:      "Kungsängsesplanaden 2",
				Postcode:     "753 22",
				City:         "Uppsala",
				IsActive:     true,
			},
			ProjectType:         models.ProjectTypeDemontering,
			Month:               ptrInt(9),
			Description:         "Kontorshus som demonteras. Stommar och fasadelement finns tillgängliga.",
			Contact:             "atervinning@uppsala.se",
			AvailableMaterials:  "Betong, Stål, Fönster",
			LookingForMaterials: "",
			IsPublic:            true,
		},
		{
			MapItem: models.MapItem{
				Latitude:     ptrFloat(59.8415),
				Longitude:    ptrFloat(17.6389),
				Name:         "Rosendal etapp 3",
				Organisation: "Uppsalahem",
				Year:         ptrInt(year + 1),
				Address:      "Torgny Segerstedts allé",
				Postcode:     "752 37",
				City:         "Uppsala",
				IsActive:     true,
			},
			ProjectType:         models.ProjectTypeNybyggnation,
			Month:               ptrInt(3),
			Description:         "Nybyggnation av bostäder. Söker återbrukat tegel och innerdörrar.",
			Contact:             "projekt@uppsalahem.se",
			AvailableMaterials:  "",
			LookingForMaterials: "Tegel, Trä, Dörrar",
			IsPublic:            true,
		},
		{
			MapItem: models.MapItem{
				Latitude:     ptrFloat(59.8758),
				Longitude:    ptrFloat(17.6253),
				Name:         "Librobäck verkstad",
				Organisation: "Vasakronan",
				Year:         ptrInt(year),
				Address:      "Börjegatan 78",
				Postcode:     "752 29",
				City:         "Uppsala",
				IsActive:     true,
			},
			ProjectType:         models.ProjectTypeOmbyggnation,
			Description:         "Ombyggnad av industrilokal till kontor.",
			Contact:             "hallbarhet@vasakronan.se",
			AvailableMaterials:  "Undertaksplattor, Belysning",
			LookingForMaterials: "Glaspartier",
			IsPublic:            true,
		},
	}

	for _, entry := range recycleEntries {
		entry.ID = primitive.NewObjectID().Hex()
		entry.CreatedAt = now
		entry.UpdatedAt = now

		filter := bson.M{"mapItem.name": entry.MapItem.Name, "mapItem.organisation": entry.MapItem.Organisation}
		update := bson.M{"$setOnInsert": entry}
		if _, err := cols.Recycle.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for %s: %v", entry.MapItem.Name, err)
		}
	}

	storyEntries := []models.Story{
		{
			MapItem: models.MapItem{
				Latitude:     ptrFloat(59.8509),
				Longitude:    ptrFloat(17.5936),
				Name:         "Solceller på Ångström",
				Organisation: "Uppsala universitet",
				Year:         ptrInt(year - 1),
				Address:      "Lägerhyddsvägen 1",
				Postcode:     "752 37",
				City:         "Uppsala",
				IsActive:     true,
			},
			CategorySwedish:    "Grön energi, Solceller",
			EducationalProgram: "Civilingenjör energisystem",
			DescriptionSwedish: "Studentprojekt om solelproduktion på campustak.",
			ReportTitle:        "Solel på campus",
			ReportContact:      "energi@uu.se",
			IsEnergyStory:      true,
		},
		{
			MapItem: models.MapItem{
				Latitude:     ptrFloat(59.8601),
				Longitude:    ptrFloat(17.6447),
				Name:         "Cykelflödet i centrum",
				Organisation: "Uppsala kommun",
				Year:         ptrInt(year),
				Address:      "Stationsgatan 12",
				Postcode:     "753 40",
				City:         "Uppsala",
				IsActive:     true,
			},
			CategorySwedish:    "Mobilitet",
			EducationalProgram: "Samhällsplanering",
			DescriptionSwedish: "Kartläggning av cykelpendling genom resecentrum.",
			IsEnergyStory:      false,
		},
	}

	for _, story := range storyEntries {
		story.ID = primitive.NewObjectID().Hex()
		story.CreatedAt = now
		story.UpdatedAt = now

		filter := bson.M{"mapItem.name": story.MapItem.Name, "mapItem.organisation": story.MapItem.Organisation}
		update := bson.M{"$setOnInsert": story}
		if _, err := cols.Stories.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for %s: %v", story.MapItem.Name, err)
		}
	}

	if err := seedAdminUser(ctx, cols, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"), cfg.Timezone); err != nil {
		log.Fatalf("seed admin error: %v", err)
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, email, password string, loc *time.Location) error {
	if email == "" || password == "" {
		log.Println("seed admin: ADMIN_EMAIL or ADMIN_PASSWORD missing, skipping")
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().In(loc)
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":          primitive.NewObjectID().Hex(),
			"email":        email,
			"passwordHash": hash,
			"isAdmin":      true,
			"createdAt":    now,
			"updatedAt":    now,
		},
	}
	_, err = cols.Users.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	return err
}
