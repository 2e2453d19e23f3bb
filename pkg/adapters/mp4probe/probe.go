// Package mp4probe reads MP4 container metadata with mp4ff: video track
// dimensions, duration, and per-sample presentation timestamps. It parses
// box structure only; no sample payload is decoded.
package mp4probe

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/slidecast/pkg/media"
)

// Info describes the video track of an MP4 file.
type Info struct {
	Width      int
	Height     int
	DurationMs int
	// SampleTimestampsMs holds every video sample's presentation time in
	// presentation order, matching the frame order a decoder emits.
	SampleTimestampsMs []int
}

// ProbeFile reads the video track metadata of an MP4 file.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return probe(f)
}

func probe(reader io.ReadSeeker) (Info, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	trak := findVideoTrack(mp4File)
	if trak == nil {
		return Info{}, media.ErrVideoTrackMissing
	}

	info := Info{
		Width:  int(trak.Tkhd.Width >> 16),
		Height: int(trak.Tkhd.Height >> 16),
	}

	var timescale uint32 = 1000
	if trak.Mdia != nil && trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
		info.DurationMs = int(trak.Mdia.Mdhd.Duration * 1000 / uint64(timescale))
	}

	if mp4File.IsFragmented() {
		info.SampleTimestampsMs, err = fragmentedTimestamps(mp4File, trak.Tkhd.TrackID, timescale)
	} else {
		info.SampleTimestampsMs, err = progressiveTimestamps(trak, timescale)
	}
	if err != nil {
		return Info{}, err
	}
	sortAndRebase(info.SampleTimestampsMs)

	return info, nil
}

// sortAndRebase orders timestamps by presentation time and shifts a
// negative leading composition offset to zero.
func sortAndRebase(ts []int) {
	sort.Ints(ts)
	if len(ts) > 0 && ts[0] < 0 {
		base := ts[0]
		for i := range ts {
			ts[i] -= base
		}
	}
}

// findVideoTrack returns the first "vide" track, looking in the init
// segment for fragmented files.
func findVideoTrack(mp4File *mp4.File) *mp4.TrakBox {
	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return nil
	}
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

// progressiveTimestamps walks the stts box of a progressive MP4, adding
// ctts composition offsets when present so B-frame sources yield
// presentation times rather than decode times.
func progressiveTimestamps(trak *mp4.TrakBox, timescale uint32) ([]int, error) {
	if trak.Mdia == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return nil, fmt.Errorf("no sample table found")
	}
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz == nil || stbl.Stts == nil {
		return nil, fmt.Errorf("incomplete sample table")
	}

	count := stbl.Stsz.SampleNumber
	timestamps := make([]int, 0, count)
	for sampleNr := uint32(1); sampleNr <= count; sampleNr++ {
		decodeTime, _ := stbl.Stts.GetDecodeTime(sampleNr)
		presTime := int64(decodeTime)
		if stbl.Ctts != nil {
			presTime += int64(stbl.Ctts.GetCompositionTimeOffset(sampleNr))
		}
		timestamps = append(timestamps, int(presTime*1000/int64(timescale)))
	}
	return timestamps, nil
}

// fragmentedTimestamps accumulates sample times across moof fragments.
func fragmentedTimestamps(mp4File *mp4.File, trackID uint32, timescale uint32) ([]int, error) {
	var trex *mp4.TrexBox
	if mp4File.Init != nil && mp4File.Init.Moov != nil && mp4File.Init.Moov.Mvex != nil {
		for _, t := range mp4File.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var timestamps []int
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != trackID {
					continue
				}

				var baseDecodeTime uint64
				if traf.Tfdt != nil {
					baseDecodeTime = traf.Tfdt.BaseMediaDecodeTime()
				}

				samples, err := frag.GetFullSamples(trex)
				if err != nil {
					return nil, fmt.Errorf("get samples: %w", err)
				}

				currentTime := baseDecodeTime
				for _, sample := range samples {
					presTime := int64(currentTime) + int64(sample.CompositionTimeOffset)
					timestamps = append(timestamps, int(presTime*1000/int64(timescale)))
					currentTime += uint64(sample.Dur)
				}
			}
		}
	}
	return timestamps, nil
}
