package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Generation
		"Scheduled %d frames over %.1fs in %s mode": "%d フレーム（%.1f秒）を %s モードでスケジュールしました",
		"Producing %d frames at %dx%d":              "%d フレームを %dx%d で生成中",
		"Schedule exhausted after %d frames":        "%d フレームでスケジュールを完了しました",
		"Generated %s":                              "%s を生成しました",

		// Muxing and export
		"Skipping zero-length audio segment %s": "長さ0の音声セグメント %s をスキップします",
		"Could not remove temp video %s: %s":    "一時動画 %s を削除できませんでした: %s",
		"Running ffmpeg %s":                     "ffmpeg を実行中 %s",

		// Reversal
		"Reversing %d samples at %dx%d (%s)": "%d サンプルを %dx%d (%s) で逆転中",

		// Concatenation
		"Concatenating %d clips, total %dms":             "%d クリップを連結中（合計 %dms）",
		"Ignoring %d input(s) with unsupported extensions": "未対応の拡張子の入力 %d 件を無視します",
	})
}
