// Package prompts содержит шаблоны промптов планировщика.
//
// Шаблоны compile-time константы: никакой загрузки промптов с диска,
// набор операций известен на этапе сборки и меняется вместе с кодом.
package prompts

import "fmt"

// SystemPlanner — системный промпт для построения плана операций.
const SystemPlanner = `You are a task planning assistant for a file organizing utility.
You are given a task and a catalog of available operations (name, usage text, argument schema).
Sub-divide the task into the smallest reasonable sequence of operation calls and return it
as a single JSON object of the form:

{"steps": [{"tool": "<operation name>", "args": {...}, "note": "<short reason>"}]}

Rules:
- Use only operations from the catalog. Any other name makes the whole plan invalid.
- Arguments must match the operation's JSON schema.
- Every operation reports a success flag in its result; order the steps so that each one
  only depends on files produced by earlier steps.
- Keep it simple and concise. Return only the JSON object, no prose.`

// SystemSubTasks — системный промпт для текстовой разбивки задачи
// (режим без каталога операций).
const SystemSubTasks = `You are given a task, you need to sub-divide the task into smaller sub-tasks.
Provide the list of sub-tasks needed to complete the task in the best possible way.
Keep it simple and concise and provide the list of sub-tasks in a list format and plain text.`

// taskTemplate — постановка задачи с каталогом операций.
const taskTemplate = `Task: scan the folder %s, move files of the same type into per-type subfolders
within the output folder %s, then compress every moved file inside its subfolder.
Files are likely to be of type PDF, PNG, JPG. Only create folders that do not exist yet,
based on the file type.

Catalog of available operations:
%s

Plan the sequence of operation calls that completes the task.`

// subTasksTemplate — постановка задачи для текстовой разбивки.
const subTasksTemplate = `Task is to scan a folder, move the same type of files to respective folders.
Files are of the type of PDF, PNG, JPG.
Then compress the files within the same folder.
Keep it simple and concise.`

// RenderPlannerTask подставляет папки и каталог операций в шаблон задачи.
func RenderPlannerTask(inputFolder, outputFolder, catalogJSON string) string {
	return fmt.Sprintf(taskTemplate, inputFolder, outputFolder, catalogJSON)
}

// RenderSubTasksPrompt возвращает постановку задачи для текстовой разбивки.
func RenderSubTasksPrompt() string {
	return subTasksTemplate
}
