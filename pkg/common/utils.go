// Copyright (c) 2023 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"strings"
)

// CountWords counts whitespace separated words in text.
// Empty or whitespace-only text has zero words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
