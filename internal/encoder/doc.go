// Package encoder turns one source video into the texture atlases and
// audio track a converted mod needs, and reports the grid geometry the
// mesh and plugin patching steps consume.
//
// Sources are probed with ffprobe, frames and audio are extracted
// through ffmpeg, and the frames are composed into 16x16 atlases that
// are written as DDS textures under the batch output directory.
package encoder
