// Package main provides localization for the slidecast CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Turn still images and audio tracks into narrated videos.": "静止画と音声トラックからナレーション付き動画を作成します。",

		// Subcommands
		"Compose still images and audio tracks into an MP4 video.": "静止画と音声トラックを合成してMP4動画を作成",
		"Rewrite a clip with its frames in reverse order.":         "クリップのフレームを逆順に書き直し",
		"Join clips end to end into one MP4 video.":                "複数のクリップを連結して1本のMP4動画を作成",
		"Show version information.":                                "バージョン情報を表示",

		// Arguments and flags
		"Image files in slide order.":                        "スライド順の画像ファイル",
		"Audio files paired with the images.":                "画像と対になる音声ファイル",
		"Output MP4 file path.":                              "出力MP4ファイルパス",
		"YAML configuration file (flags override it).":      "YAML設定ファイル（フラグが優先）",
		"Pairing mode for images and audio.":                 "画像と音声のペアリングモード",
		"Cap the total duration in seconds (0 = uncapped).": "合計時間の上限（秒、0 = 無制限）",
		"Scale frames to this width (0 = keep source size).":          "フレームをこの幅にスケール（0 = 元サイズ）",
		"Scale height along with the width to keep the aspect ratio.": "アスペクト比を保つため高さも合わせてスケール",
		"Background color (hex, e.g., #808080).":                      "背景色（16進数、例: #808080）",
		"Output frame rate.":                            "出力フレームレート",
		"Video quality (CRF 0-51, lower is better).":   "動画品質（CRF 0-51、低いほど高品質）",
		"Video bitrate in kbps (0 = CRF only).":        "動画ビットレート（kbps、0 = CRFのみ）",
		"Directory for intermediate files.":            "中間ファイルのディレクトリ",
		"Source clip (.mov, .mp4 or .m4v).":            "入力クリップ（.mov、.mp4、.m4v）",
		"Clips to join, in order.":                     "連結するクリップ（順番通り）",
		"Log level (debug, info, warn, error).":        "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":                     "全てのログ出力を抑制",

		// Runtime messages
		"Generating %s from %d image(s) and %d audio track(s)...": "%s を %d 枚の画像と %d 本の音声トラックから生成中...",
		"Reversing %s...":                "%s を逆転中...",
		"Joining %d clip(s)...":          "%d 本のクリップを連結中...",
		"Output saved to %s":             "出力を %s に保存しました",
		"Interrupted, shutting down...":  "中断されました。シャットダウン中...",
		"slidecast version %s":           "slidecast バージョン %s",
	})
}
