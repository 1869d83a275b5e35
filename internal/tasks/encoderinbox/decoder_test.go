package encoderinbox

import "testing"

func TestDecoderJSON(t *testing.T) {
	decoder := newDecoder()
	payload := []byte(`{"video_id":"8c22ebce-2222-4e87-bbbb-bbbbbbbbbbbb","status":"COMPLETED","encoded_video_folder":"8c22ebce-2222-4e87-bbbb-bbbbbbbbbbbb/encoded"}`)

	result, err := decoder.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.VideoID != "8c22ebce-2222-4e87-bbbb-bbbbbbbbbbbb" {
		t.Fatalf("unexpected video id: %s", result.VideoID)
	}
	if result.Status != statusCompleted {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.EncodedVideoFolder != "8c22ebce-2222-4e87-bbbb-bbbbbbbbbbbb/encoded" {
		t.Fatalf("unexpected folder: %s", result.EncodedVideoFolder)
	}
}

func TestDecoderErrorPayload(t *testing.T) {
	decoder := newDecoder()
	payload := []byte(`{"video_id":"8c22ebce-2222-4e87-bbbb-bbbbbbbbbbbb","status":"ERROR","error":"codec not supported"}`)

	result, err := decoder.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Status != statusError {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Error != "codec not supported" {
		t.Fatalf("unexpected error field: %s", result.Error)
	}
}

func TestDecoderRejectsEmptyPayload(t *testing.T) {
	decoder := newDecoder()
	if _, err := decoder.Decode(nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestDecoderRejectsMalformedPayload(t *testing.T) {
	decoder := newDecoder()
	if _, err := decoder.Decode([]byte(`{"video_id":`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
