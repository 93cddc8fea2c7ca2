package format

import "fmt"

const sectionTemplate = "```markdown\n" +
	"## 变更内容 / Changes\n描述这个 PR 做了什么改动\n\n" +
	"## 原因 / Motivation\n解释为什么需要这些改动\n\n" +
	"## 测试 / Testing\n说明如何测试这些改动\n\n" +
	"## 相关问题 / Related issues\n列出相关的 issue 或文档\n" +
	"```"

const headingWarning = "## ⚠️ PR 描述格式建议 / Description format suggestion\n\n" +
	"您的 PR 描述缺少结构化的章节。建议使用 Markdown 标题来组织描述：\n" +
	"Your description has no sections. Consider organizing it with markdown headings:\n\n" +
	sectionTemplate + "\n\n" +
	"这种结构可以让审查者更容易理解您的改动。"

func titleErrorMessage(title, pattern string) string {
	return fmt.Sprintf(`## PR 标题格式错误 / Invalid PR title

您的 PR 标题 `+"`%s`"+` 不符合要求的格式：
The title `+"`%s`"+` does not match the required pattern:
`+"```"+`
%s
`+"```"+`

### 正确的标题示例 / Examples
- [Feature] 添加用户认证功能
- [Fix] 修复数据处理器中的内存泄漏
- [Docs] 更新 API 文档
- [Refactor] 重构用户管理模块
- [Test] 添加集成测试
- [Chore] 更新依赖版本

### 如何修复 / How to fix
1. 点击 PR 标题旁边的编辑按钮（✏️）/ Click the edit button next to the title
2. 修改标题以符合上述格式 / Rename it to match the pattern
3. 点击保存 / Save`, title, title, pattern)
}

func bodyErrorMessage(minLength int) string {
	return fmt.Sprintf(`## PR 描述错误 / Invalid PR description

PR 描述太短或为空（至少 %d 个字符）。请提供以下信息：
The description is empty or shorter than %d characters. Please provide:

### 必需的章节 / Required sections
%s

### 如何修复 / How to fix
1. 点击 PR 描述旁边的编辑按钮 / Edit the description
2. 添加上述必需的章节 / Add the sections above
3. 为每个章节提供详细信息 / Fill in each section
4. 点击保存 / Save

好的 PR 描述可以帮助审查者更好地理解您的改动，加快审查过程。`, minLength, minLength, sectionTemplate)
}
