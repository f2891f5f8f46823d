package main

import (
	"context"
	"log"

	"mufessir/internal/config"
	"mufessir/internal/entity"
	"mufessir/internal/repository/unitofwork"
	"mufessir/pkg/database"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

// Seeds a small fixture set for local development: Al-Fatiha with two
// classical scholars and their commentary on the opening verse.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	verses := []*entity.Verse{
		{
			Id:          "verse-1-1",
			SurahNumber: 1,
			SurahName:   "Fatiha",
			VerseNumber: 1,
			ArabicText:  "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
			Translation: strPtr("Rahman ve Rahim olan Allah'ın adıyla."),
		},
		{
			Id:          "verse-1-2",
			SurahNumber: 1,
			SurahName:   "Fatiha",
			VerseNumber: 2,
			ArabicText:  "الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ",
			Translation: strPtr("Hamd, alemlerin Rabbi Allah'a mahsustur."),
		},
	}
	if err := uow.VerseRepository().CreateBulk(ctx, verses); err != nil {
		log.Fatalf("Failed to seed verses: %v", err)
	}

	scholars := []*entity.Scholar{
		{
			Id:              "scholar-1",
			Name:            "İbn Kesir",
			DeathYear:       intPtr(1373),
			Century:         14,
			Madhab:          strPtr("Şafii"),
			Period:          strPtr("Memlük"),
			Environment:     strPtr("Şam"),
			OriginCountry:   strPtr("Suriye"),
			ReputationScore: floatPtr(9.5),
		},
		{
			Id:              "scholar-2",
			Name:            "Fahreddin Razi",
			DeathYear:       intPtr(1210),
			Century:         13,
			Madhab:          strPtr("Şafii"),
			Period:          strPtr("Selçuklu"),
			Environment:     strPtr("Rey"),
			OriginCountry:   strPtr("İran"),
			ReputationScore: floatPtr(9.0),
		},
	}
	if err := uow.ScholarRepository().CreateBulk(ctx, scholars); err != nil {
		log.Fatalf("Failed to seed scholars: %v", err)
	}

	tafsirs := []*entity.Tafsir{
		{
			Id:         "tafsir-1-1",
			VerseId:    "verse-1-1",
			ScholarId:  "scholar-1",
			TafsirText: "Besmele, her hayırlı işin başıdır. Allah'ın Rahman ve Rahim isimleri, rahmetinin hem dünyayı hem ahireti kuşattığını bildirir.",
			TafsirType: strPtr("rivayet"),
		},
		{
			Id:         "tafsir-1-2",
			VerseId:    "verse-1-1",
			ScholarId:  "scholar-2",
			TafsirText: "Besmeledeki isim kelimesi üzerine kelam alimleri uzun bahisler açmıştır. Rahman sıfatı yalnızca Allah için kullanılır.",
			TafsirType: strPtr("dirayet"),
		},
	}
	if err := uow.TafsirRepository().CreateBulk(ctx, tafsirs); err != nil {
		log.Fatalf("Failed to seed tafsirs: %v", err)
	}

	log.Printf("✅ Seeded %d verses, %d scholars, %d tafsirs", len(verses), len(scholars), len(tafsirs))
}
