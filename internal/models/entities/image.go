package entities

// Image 表示无转码流水线的图片类附件（封面、半图、横幅），只保存存储路径。
type Image struct {
	Path string
}

// NewImage 构造图片附件。
func NewImage(path string) *Image {
	return &Image{Path: path}
}
