package audio

import (
	"io"
	"math/rand"
	"testing"
)

func TestRumbleLength(t *testing.T) {
	r := NewRumble(rand.New(rand.NewSource(1)), 1)

	buf := make([][2]float64, 1000)
	total := 0
	for {
		n, ok := r.Stream(buf)
		total += n
		if !ok {
			break
		}
	}

	if total != r.Len() {
		t.Errorf("streamed %d samples, want %d", total, r.Len())
	}
	if r.Len() != 120000 {
		t.Errorf("expected 2.5s at 48kHz = 120000 samples, got %d", r.Len())
	}

	// 播放结束后继续读取返回 0, false
	if n, ok := r.Stream(buf); n != 0 || ok {
		t.Errorf("exhausted stream returned (%d, %v)", n, ok)
	}
}

func TestRumbleRangeAndDecay(t *testing.T) {
	r := NewRumble(rand.New(rand.NewSource(2)), 1)

	samples := make([][2]float64, r.Len())
	n, _ := r.Stream(samples)
	if n != r.Len() {
		t.Fatalf("expected single read of %d samples, got %d", r.Len(), n)
	}

	peak := func(from, to int) float64 {
		p := 0.0
		for _, s := range samples[from:to] {
			if s[0] < -1 || s[0] > 1 {
				t.Fatalf("sample out of range: %v", s[0])
			}
			if s[0] != s[1] {
				t.Fatalf("channels differ: %v", s)
			}
			if v := s[0]; v > p {
				p = v
			} else if -v > p {
				p = -v
			}
		}
		return p
	}

	head := peak(0, 24000)               // 前 0.5 秒
	tail := peak(r.Len()-24000, r.Len()) // 最后 0.5 秒
	if head <= tail {
		t.Errorf("rumble should decay: head peak %v, tail peak %v", head, tail)
	}
}

func TestRumbleVolume(t *testing.T) {
	loud := NewRumble(rand.New(rand.NewSource(3)), 1)
	silent := NewRumble(rand.New(rand.NewSource(3)), 0)

	a := make([][2]float64, 4800)
	b := make([][2]float64, 4800)
	loud.Stream(a)
	silent.Stream(b)

	for i := range b {
		if b[i][0] != 0 {
			t.Fatalf("volume 0 should be silent, sample %d = %v", i, b[i][0])
		}
	}
}

func TestPCMStream(t *testing.T) {
	r := NewRumble(rand.New(rand.NewSource(4)), 0.5)
	pcm := NewPCMStream(r)

	// 每个采样 2 声道 * 2 字节
	if pcm.Length() != int64(r.Len()*4) {
		t.Fatalf("Length() = %d, want %d", pcm.Length(), r.Len()*4)
	}

	buf := make([]byte, 100)
	n, err := pcm.Read(buf)
	if err != nil || n != 100 {
		t.Fatalf("Read() = %d, %v", n, err)
	}

	pos, err := pcm.Seek(-4, io.SeekEnd)
	if err != nil || pos != pcm.Length()-4 {
		t.Fatalf("Seek(-4, End) = %d, %v", pos, err)
	}
	n, _ = pcm.Read(buf)
	if n != 4 {
		t.Errorf("expected 4 trailing bytes, got %d", n)
	}
	if _, err := pcm.Read(buf); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}

	if _, err := pcm.Seek(-1, io.SeekStart); err == nil {
		t.Error("expected error for negative position")
	}
	if _, err := pcm.Seek(0, 42); err == nil {
		t.Error("expected error for invalid whence")
	}
}

func TestRenderBuffersWholeRumble(t *testing.T) {
	buf := Render(rand.New(rand.NewSource(4)), 0.5)
	if buf.Len() != NewRumble(rand.New(rand.NewSource(4)), 0.5).Len() {
		t.Errorf("buffer length %d does not match rumble length", buf.Len())
	}
	if buf.Format() != Format {
		t.Errorf("unexpected buffer format %+v", buf.Format())
	}
}

func TestSpeakerPlayerUninitialized(t *testing.T) {
	sp := NewSpeakerPlayer(rand.New(rand.NewSource(5)), 1)

	// 未初始化时播放和清理都是空操作
	sp.PlayThunder()
	sp.Cleanup()

	if sp.Muted() {
		t.Error("new player should not be muted")
	}
	sp.SetMuted(true)
	if !sp.Muted() {
		t.Error("SetMuted(true) not applied")
	}
}
