package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"mufessir/internal/config"
	"mufessir/internal/entity"
	"mufessir/internal/repository/unitofwork"
	"mufessir/pkg/database"
	"mufessir/pkg/sqldump"

	"github.com/fatih/color"
)

// surahInfo collects the name variants of one surah row so verses can
// carry the best available display name.
type surahInfo struct {
	SurahNumber int
	NameAr      string
	NameTr      string
	NameEn      string
}

type mufassirInfo struct {
	NameTr          string
	NameEn          string
	NameAr          string
	NameLong        string
	DeathMiladi     *int
	Century         int
	Madhab          string
	Period          string
	Environment     string
	OriginCountry   string
	ReputationScore *float64
	TafsirType      string
}

type mufassirFallback struct {
	NameLabel string
	NameAr    string
}

type ayahRow struct {
	SurahId         int
	AyahNumber      int
	ArabicText      string
	Transliteration string
}

type importer struct {
	ctx context.Context
	uow unitofwork.UnitOfWork

	batchVerses  int
	batchTafsirs int

	surahById            map[int]surahInfo
	mufassirById         map[int]mufassirInfo
	mufassirFallbackById map[int]mufassirFallback
	mufassirTypeById     map[int]string
	ayahRows             []ayahRow

	verseBatch  []*entity.Verse
	tafsirBatch []*entity.Tafsir

	versesReady   bool
	scholarsReady bool

	verseCount   int
	scholarCount int
	tafsirCount  int
}

func isTableOfInterest(table string) bool {
	switch table {
	case "surahs", "ayahs", "mufassirs", "Mufessirs_dead_hijri":
		return true
	}
	return strings.HasPrefix(table, "tafseer_")
}

func (im *importer) onRow(table string, row []sqldump.Field) error {
	switch {
	case table == "surahs":
		im.handleSurah(row)
	case table == "ayahs":
		im.handleAyah(row)
	case table == "mufassirs":
		im.handleMufassir(row)
	case table == "Mufessirs_dead_hijri":
		im.handleMufassirFallback(row)
	case strings.HasPrefix(table, "tafseer_"):
		return im.handleTafseer(table, row)
	}
	return nil
}

func (im *importer) onDone(table string) error {
	// The dump lists surahs after ayahs and mufassirs, so the end of the
	// surahs statement is the earliest point verses and scholars can be
	// materialized with full names.
	if table == "surahs" {
		if err := im.buildVerses(); err != nil {
			return err
		}
		if err := im.buildScholars(); err != nil {
			return err
		}
	}
	if strings.HasPrefix(table, "tafseer_") {
		return im.flushTafsirs()
	}
	return nil
}

func (im *importer) handleSurah(row []sqldump.Field) {
	if len(row) < 5 {
		return
	}
	id, ok := row[0].Int()
	if !ok {
		return
	}
	surahNumber, ok := row[1].Int()
	if !ok {
		surahNumber = id
	}
	im.surahById[id] = surahInfo{
		SurahNumber: surahNumber,
		NameAr:      row[2].String(),
		NameTr:      row[3].String(),
		NameEn:      row[4].String(),
	}
}

func (im *importer) handleAyah(row []sqldump.Field) {
	if len(row) < 7 {
		return
	}
	surahId, okSurah := row[1].Int()
	ayahNumber, okAyah := row[2].Int()
	if !okSurah || !okAyah {
		return
	}
	im.ayahRows = append(im.ayahRows, ayahRow{
		SurahId:         surahId,
		AyahNumber:      ayahNumber,
		ArabicText:      row[3].String(),
		Transliteration: row[6].String(),
	})
}

func (im *importer) handleMufassir(row []sqldump.Field) {
	if len(row) < 22 {
		return
	}
	mufassirId, ok := row[1].Int()
	if !ok {
		return
	}
	info := mufassirInfo{
		NameEn:        row[2].String(),
		NameTr:        row[3].String(),
		NameAr:        row[4].String(),
		NameLong:      row[5].String(),
		Madhab:        row[13].String(),
		Period:        row[12].String(),
		Environment:   row[14].String(),
		OriginCountry: row[15].String(),
		TafsirType:    row[21].String(),
	}
	if death, ok := row[10].Int(); ok {
		info.DeathMiladi = &death
	}
	if century, ok := row[11].Int(); ok {
		info.Century = century
	}
	if score, ok := row[16].Number(); ok {
		info.ReputationScore = &score
	}
	im.mufassirById[mufassirId] = info
}

func (im *importer) handleMufassirFallback(row []sqldump.Field) {
	if len(row) < 3 {
		return
	}
	mufassirId, ok := row[1].Int()
	if !ok {
		return
	}
	im.mufassirFallbackById[mufassirId] = mufassirFallback{
		NameLabel: row[0].String(),
		NameAr:    row[2].String(),
	}
}

func (im *importer) handleTafseer(table string, row []sqldump.Field) error {
	if !im.versesReady || !im.scholarsReady {
		return fmt.Errorf("tafseer rows in %s appeared before the surahs statement", table)
	}
	if len(row) < 5 {
		return nil
	}
	tafseerId, okT := row[0].Int()
	surahId, okS := row[1].Int()
	ayahId, okA := row[2].Int()
	mufassirId, okM := row[3].Int()
	if !okT || !okS || !okA || !okM {
		return nil
	}

	surahNumber := surahId
	if info, found := im.surahById[surahId]; found {
		surahNumber = info.SurahNumber
	}
	// Surah-level commentary rows carry a synthetic large ayah id and map
	// onto the verse-0 header row.
	verseNumber := ayahId
	if ayahId >= 10000 {
		verseNumber = 0
	}

	tafsir := &entity.Tafsir{
		Id:         fmt.Sprintf("tafsir-%d-%d", surahId, tafseerId),
		VerseId:    fmt.Sprintf("verse-%d-%d", surahNumber, verseNumber),
		ScholarId:  fmt.Sprintf("scholar-%d", mufassirId),
		TafsirText: row[4].String(),
	}
	if t, found := im.mufassirTypeById[mufassirId]; found {
		tafsir.TafsirType = &t
	}
	im.tafsirBatch = append(im.tafsirBatch, tafsir)

	if len(im.tafsirBatch) >= im.batchTafsirs {
		return im.flushTafsirs()
	}
	return nil
}

func (im *importer) buildVerses() error {
	for _, a := range im.ayahRows {
		surahNumber := a.SurahId
		surahName := ""
		if info, found := im.surahById[a.SurahId]; found {
			surahNumber = info.SurahNumber
			surahName = firstNonEmpty(info.NameTr, info.NameEn, info.NameAr)
		}
		if surahName == "" {
			surahName = fmt.Sprintf("Surah %d", surahNumber)
		}

		verse := &entity.Verse{
			Id:          fmt.Sprintf("verse-%d-%d", surahNumber, a.AyahNumber),
			SurahNumber: surahNumber,
			SurahName:   surahName,
			VerseNumber: a.AyahNumber,
			ArabicText:  a.ArabicText,
		}
		if a.Transliteration != "" {
			t := a.Transliteration
			verse.Transliteration = &t
		}
		im.verseBatch = append(im.verseBatch, verse)
		if len(im.verseBatch) >= im.batchVerses {
			if err := im.flushVerses(); err != nil {
				return err
			}
		}
	}

	// One verse-0 header per surah receives the surah-level commentary.
	for surahId, info := range im.surahById {
		surahNumber := info.SurahNumber
		if surahNumber == 0 {
			surahNumber = surahId
		}
		surahName := firstNonEmpty(info.NameTr, info.NameEn, info.NameAr)
		if surahName == "" {
			surahName = fmt.Sprintf("Surah %d", surahNumber)
		}
		im.verseBatch = append(im.verseBatch, &entity.Verse{
			Id:          fmt.Sprintf("verse-%d-0", surahNumber),
			SurahNumber: surahNumber,
			SurahName:   surahName,
			VerseNumber: 0,
			ArabicText:  info.NameAr,
		})
		if len(im.verseBatch) >= im.batchVerses {
			if err := im.flushVerses(); err != nil {
				return err
			}
		}
	}

	if err := im.flushVerses(); err != nil {
		return err
	}
	im.versesReady = true
	return nil
}

func (im *importer) buildScholars() error {
	ids := make([]int, 0, len(im.mufassirById)+len(im.mufassirFallbackById))
	seen := make(map[int]bool)
	for id := range im.mufassirById {
		ids = append(ids, id)
		seen[id] = true
	}
	for id := range im.mufassirFallbackById {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	scholars := make([]*entity.Scholar, 0, len(ids))
	for _, id := range ids {
		m, hasMain := im.mufassirById[id]
		fallback := im.mufassirFallbackById[id]

		name := firstNonEmpty(m.NameTr, m.NameEn, m.NameAr, m.NameLong, fallback.NameAr, fallback.NameLabel)
		if name == "" {
			name = fmt.Sprintf("Mufassir %d", id)
		}
		if hasMain && m.TafsirType != "" {
			im.mufassirTypeById[id] = m.TafsirType
		}

		scholar := &entity.Scholar{
			Id:              fmt.Sprintf("scholar-%d", id),
			Name:            name,
			DeathYear:       m.DeathMiladi,
			Century:         m.Century,
			ReputationScore: m.ReputationScore,
		}
		if m.Madhab != "" {
			v := m.Madhab
			scholar.Madhab = &v
		}
		if m.Period != "" {
			v := m.Period
			scholar.Period = &v
		}
		if m.Environment != "" {
			v := m.Environment
			scholar.Environment = &v
		}
		if m.OriginCountry != "" {
			v := m.OriginCountry
			scholar.OriginCountry = &v
		}
		scholars = append(scholars, scholar)
	}

	if len(scholars) > 0 {
		if err := im.uow.ScholarRepository().CreateBulk(im.ctx, scholars); err != nil {
			return err
		}
		im.scholarCount = len(scholars)
	}
	im.scholarsReady = true
	return nil
}

func (im *importer) flushVerses() error {
	if len(im.verseBatch) == 0 {
		return nil
	}
	if err := im.uow.VerseRepository().CreateBulk(im.ctx, im.verseBatch); err != nil {
		return err
	}
	im.verseCount += len(im.verseBatch)
	im.verseBatch = im.verseBatch[:0]
	return nil
}

func (im *importer) flushTafsirs() error {
	if len(im.tafsirBatch) == 0 {
		return nil
	}
	if err := im.uow.TafsirRepository().CreateBulk(im.ctx, im.tafsirBatch); err != nil {
		return err
	}
	im.tafsirCount += len(im.tafsirBatch)
	im.tafsirBatch = im.tafsirBatch[:0]
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	cfg := config.Load()

	if os.Getenv("RESET_DB") != "true" {
		color.Red("RESET_DB=true is required: the import clears verses, scholars and tafsirs first.")
		os.Exit(1)
	}
	if cfg.Import.SQLDumpPath == "" {
		color.Red("SQL_DUMP_PATH is not set.")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	color.Cyan("Clearing existing Quran data...")
	clearSQL := []string{
		`DELETE FROM search_results;`,
		`DELETE FROM searches;`,
		`DELETE FROM tafsirs;`,
		`DELETE FROM scholars;`,
		`DELETE FROM verses;`,
	}
	for _, sql := range clearSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Failed to clear table: %v", err)
			os.Exit(1)
		}
	}

	file, err := os.Open(cfg.Import.SQLDumpPath)
	if err != nil {
		color.Red("Failed to open SQL dump %s: %v", cfg.Import.SQLDumpPath, err)
		os.Exit(1)
	}
	defer file.Close()

	color.Cyan("Importing from %s ...", cfg.Import.SQLDumpPath)

	im := &importer{
		ctx:                  ctx,
		uow:                  uow,
		batchVerses:          cfg.Import.BatchVerses,
		batchTafsirs:         cfg.Import.BatchTafsirs,
		surahById:            make(map[int]surahInfo),
		mufassirById:         make(map[int]mufassirInfo),
		mufassirFallbackById: make(map[int]mufassirFallback),
		mufassirTypeById:     make(map[int]string),
	}

	parser := sqldump.NewParser(sqldump.Handler{
		WantTable: isTableOfInterest,
		OnRow:     im.onRow,
		OnDone:    im.onDone,
	})
	if err := parser.Parse(file); err != nil {
		color.Red("Import failed: %v", err)
		os.Exit(1)
	}
	if err := im.flushTafsirs(); err != nil {
		color.Red("Failed to flush final tafsir batch: %v", err)
		os.Exit(1)
	}

	color.Green("Import complete: %d verses, %d scholars, %d tafsirs", im.verseCount, im.scholarCount, im.tafsirCount)
}
