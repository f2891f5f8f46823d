package dto

// EmbedTafsirMessage is the payload published to the embedding backfill topic.
type EmbedTafsirMessage struct {
	TafsirId string `json:"tafsir_id"`
}
