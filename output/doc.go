// Package output renders recommendation rows.
//
// Two formats are supported:
//
//	CSV   User_ID,Book_ID,Book_Title,Recommendation_Score
//	JSONL one JSON object per row, encoded with a codec.Codec
//
// Users without suggestions produce no rows. The CSV header is written even
// when no rows follow.
package output
