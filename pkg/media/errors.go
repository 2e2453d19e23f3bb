// Package media holds the vocabulary shared by the generation, reversal
// and concatenation paths: error kinds, the container allow-list and
// orientation classification.
package media

import "errors"

var (
	// ErrEncoderStart is returned when the encoding backend cannot be
	// initialized.
	ErrEncoderStart = errors.New("media: encoder start failed")

	// ErrFrameAppend is returned when the frame sink rejects a frame.
	// Frames already written stay in place.
	ErrFrameAppend = errors.New("media: frame append failed")

	// ErrStorageDirectory is returned when the working or output
	// directory cannot be resolved or created.
	ErrStorageDirectory = errors.New("media: storage directory unavailable")

	// ErrExportSessionStart is returned when the export backend cannot
	// start a session.
	ErrExportSessionStart = errors.New("media: export session start failed")

	// ErrExportCancelled is returned when an export was cancelled and the
	// backend supplied no underlying error.
	ErrExportCancelled = errors.New("media: export cancelled")

	// ErrNoInputAssets is returned when an operation receives no usable
	// input assets, either because none were given or because all were
	// filtered out.
	ErrNoInputAssets = errors.New("media: no input assets provided")

	// ErrSourceClipUnreadable is returned when a source clip yields fewer
	// than two decodable samples.
	ErrSourceClipUnreadable = errors.New("media: source clip unreadable")

	// ErrUnsupportedExtension is returned when a source path's container
	// extension is not in the allow-list. No decode is attempted.
	ErrUnsupportedExtension = errors.New("media: unsupported container extension")

	// ErrDecoderStart is returned when the decoding backend cannot be
	// started for a source asset.
	ErrDecoderStart = errors.New("media: decoder start failed")

	// ErrVideoTrackMissing is returned when a source asset has no video
	// track.
	ErrVideoTrackMissing = errors.New("media: video track missing")
)
