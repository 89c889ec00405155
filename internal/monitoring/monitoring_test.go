package monitoring

import "testing"

func TestRecordEventCountsByLabels(t *testing.T) {
	t.Parallel()
	s := NewService()
	s.RecordEvent("sensor.deleted", map[string]string{"sensor": "4"})
	s.RecordEvent("sensor.deleted", map[string]string{"sensor": "4"})
	s.RecordEvent("sensor.deleted", map[string]string{"sensor": "5"})
	s.RecordEvent("login.failed", nil)

	got := s.GetEventMetrics("sensor.deleted")
	if got["sensor=4"] != 2 || got["sensor=5"] != 1 {
		t.Fatalf("GetEventMetrics=%v", got)
	}

	snap := s.Snapshot()
	if len(snap.Events) != 2 || snap.Events[0].Name != "login.failed" || snap.Events[1].Total != 3 {
		t.Fatalf("Snapshot=%+v", snap.Events)
	}
}

func TestLabelKeyIsOrderIndependent(t *testing.T) {
	t.Parallel()
	a := labelKey(map[string]string{"b": "2", "a": "1"})
	if a != "a=1,b=2" {
		t.Fatalf("labelKey=%q", a)
	}
	if labelKey(nil) != "" {
		t.Fatalf("labelKey(nil) not empty")
	}
}
