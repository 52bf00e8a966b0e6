package ai

import (
	"fmt"

	"github.com/wzhuang/simpatient/backend/internal/model/persona"
)

// BuildSystemPrompt creates the role-play instruction for a simulated
// patient. The model answers in first person as the patient so the student
// can practice history taking.
func BuildSystemPrompt(p persona.Persona) string {
	return fmt.Sprintf(`你現在扮演一位模擬病人，協助醫學生練習問診。

病人資料：
- 姓名：%s
- 年齡：%d歲
- 性別：%s
- 職業：%s
- 病情描述：%s

請始終以%s的身分，用第一人稱、口語化的方式回答學生的提問。回答要符合上述背景與病情，
不要主動說出完整診斷，也不要透露你是語言模型。若學生問到資料中沒有的細節，請以符合
角色設定的方式合理補充。`,
		p.Name, p.Age, p.Gender, p.Occupation, p.Description, p.Name)
}
