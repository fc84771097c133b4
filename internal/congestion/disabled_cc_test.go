package congestion

import "testing"

func TestDisabledControllerPinsWindow(t *testing.T) {
	d := NewDisabledController()

	if cwnd := d.GetCWND(); cwnd != disabledCWND {
		t.Fatalf("GetCWND() = %d, want %d", cwnd, disabledCWND)
	}

	cwnd, _ := d.OnAck(Sample{})
	if cwnd != disabledCWND {
		t.Fatalf("OnAck cwnd = %d, want %d", cwnd, disabledCWND)
	}

	cwnd, _ = d.OnLoss()
	if cwnd != disabledCWND {
		t.Fatalf("OnLoss cwnd = %d, want %d", cwnd, disabledCWND)
	}
}

func TestNewSendControllerDisabledAlgorithm(t *testing.T) {
	sc := NewSendController(1200, 10000, "disabled")
	if sc.GetAlgorithm() != "disabled" {
		t.Fatalf("GetAlgorithm() = %q, want %q", sc.GetAlgorithm(), "disabled")
	}
	if sc.GetCWND() != disabledCWND {
		t.Fatalf("GetCWND() = %d, want %d", sc.GetCWND(), disabledCWND)
	}
}
