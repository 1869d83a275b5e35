// Package encoderinbox 消费外部转码器回传的结果消息，驱动主媒体的
// 转码状态机。消息经 Inbox 去重表落地，与状态变更在同一事务内提交。
package encoderinbox

import (
	"encoding/json"
	"fmt"
)

// 转码器回传的状态值。
const (
	statusProcessing = "PROCESSING"
	statusCompleted  = "COMPLETED"
	statusError      = "ERROR"
)

// EncoderResult 描述转码器回传的消息载荷。
type EncoderResult struct {
	VideoID            string `json:"video_id"`
	Status             string `json:"status"`
	EncodedVideoFolder string `json:"encoded_video_folder,omitempty"`
	Error              string `json:"error,omitempty"`
}

// decoder 实现 inbox.Decoder 接口，将 Pub/Sub payload 解析为转码结果。
type decoder struct{}

func newDecoder() *decoder {
	return &decoder{}
}

// Decode 解析消息载荷。
func (d *decoder) Decode(data []byte) (*EncoderResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("encoder inbox: empty payload")
	}
	var result EncoderResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("encoder inbox: unmarshal result: %w", err)
	}
	return &result, nil
}
