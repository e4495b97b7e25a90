package audio

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
)

// PCMStream 把 beep.Streamer 的输出缓存为 16 位小端立体声 PCM
// 格式与 ebiten/audio 的播放器一致，实现 io.ReadSeeker
type PCMStream struct {
	data   []byte
	offset int64
}

// NewPCMStream 读完 streamer 的全部采样并编码
func NewPCMStream(streamer beep.Streamer) *PCMStream {
	var data []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				s := int16(v * 32767)
				data = append(data, byte(s), byte(s>>8))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return &PCMStream{data: data}
}

// Bytes 返回全部 PCM 数据
func (p *PCMStream) Bytes() []byte {
	return p.data
}

// Read 实现 io.Reader
func (p *PCMStream) Read(b []byte) (n int, err error) {
	if p.offset >= int64(len(p.data)) {
		return 0, io.EOF
	}
	n = copy(b, p.data[p.offset:])
	p.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (p *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = p.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(p.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	p.offset = newOffset
	return newOffset, nil
}

// Length 返回 PCM 字节数
func (p *PCMStream) Length() int64 {
	return int64(len(p.data))
}
