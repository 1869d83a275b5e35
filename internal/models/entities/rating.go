package entities

import "fmt"

// Rating 表示视频的内容分级。
type Rating string

// 内容分级常量，取值与上游目录约定保持一致。
const (
	RatingER    Rating = "ER" // 特别推荐
	RatingL     Rating = "L"  // 自由级
	RatingAge10 Rating = "10"
	RatingAge12 Rating = "12"
	RatingAge14 Rating = "14"
	RatingAge16 Rating = "16"
	RatingAge18 Rating = "18"
)

// ParseRating 将字符串解析为 Rating，未识别的取值返回错误。
func ParseRating(value string) (Rating, error) {
	switch Rating(value) {
	case RatingER, RatingL, RatingAge10, RatingAge12, RatingAge14, RatingAge16, RatingAge18:
		return Rating(value), nil
	default:
		return "", fmt.Errorf("unknown rating %q", value)
	}
}

// IsValid 判断分级是否为已知取值。
func (r Rating) IsValid() bool {
	_, err := ParseRating(string(r))
	return err == nil
}

func (r Rating) String() string {
	return string(r)
}
