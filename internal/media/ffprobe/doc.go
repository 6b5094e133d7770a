// Package ffprobe shells out to ffprobe for container inspection: stream
// aspect ratios and chapter timing used by the splitter.
package ffprobe
