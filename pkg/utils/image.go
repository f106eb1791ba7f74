// Утилиты обработки изображений.
package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

// ResizeImage уменьшает изображение до указанной ширины, сохраняя пропорции.
//
// Параметры:
//   - data: байты исходного изображения (JPEG, PNG)
//   - maxWidth: целевая ширина в пикселях. Если 0 или исходная ширина меньше — возвращаются исходные байты без перекодирования.
//   - quality: качество JPEG при кодировании (1-100)
//
// Формат сохраняется: PNG кодируется обратно в PNG, остальное — в JPEG.
// Используется перед отправкой больших изображений во внешний оптимизатор,
// чтобы не гонять лишние мегабайты по сети.
func ResizeImage(data []byte, maxWidth int, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return data, nil
	}

	// Высота из aspect ratio, ресайз Lanczos3
	aspect := float64(bounds.Dy()) / float64(bounds.Dx())
	newHeight := uint(float64(maxWidth) * aspect)
	resized := resize.Resize(uint(maxWidth), newHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("encode resized image: %w", err)
		}
	} else {
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode resized image: %w", err)
		}
	}
	return buf.Bytes(), nil
}
