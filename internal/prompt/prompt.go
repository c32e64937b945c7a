package prompt

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ReadLine 从 r 读取一行文本，只去掉行尾的 "\n" / "\r\n"，不做其它裁剪或校验。
//
// 流结束且没有任何数据时返回 ("", io.EOF)；最后一行没有换行符时正常返回该行。
// 注意：r 若不是 *bufio.Reader，会多读缓冲区大小的数据（单行交互输入下无影响）。
func ReadLine(r io.Reader) (string, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
