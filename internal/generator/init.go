package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SchemaFile — имя схемы, которую создаёт Init
const SchemaFile = "flaggen.toml"

const initSchema = `# flaggen.toml — схема флагов командной строки и переменных окружения
#
# Каждый ключ — таблица с метаданными поля:
#   type     встроенный тип (string, int, u16, bool, duration, [string] ...)
#            или имя типа, объявленного вне схемы
#   enum     имя перечисления, варианты в ключе variants
#   default  значение по умолчанию
#   env      переменная окружения
#   optional поле может отсутствовать
#   long     длинный флаг, по умолчанию полный путь поля
#   short    короткий флаг из одного символа
#   doc      описание для --help

# Адрес, на котором слушает сервер
host = { type = "string", default = "127.0.0.1", env = "APP_HOST", short = "H" }

# Порт сервера
port = { type = "u16", default = "8080", env = "APP_PORT", short = "p" }

debug = { type = "bool", doc = "Подробные логи" }

level = { enum = "LogLevel", variants = ["debug", "info", "warn", "error"], default = "info", env = "APP_LOG_LEVEL" }

tags = { type = "[string]", default = ["api", "public"], env = "APP_TAGS" }

# Подключение к базе данных
[database]
url = { env = "DATABASE_URL", doc = "URL подключения" }
pool_size = { type = "int", default = "10" }
timeout = { type = "duration", default = "5s", optional = true }
`

var initFiles = map[string]string{
	SchemaFile: initSchema,
}

// Init создаёт пример схемы в указанной директории. Существующие файлы
// не перезаписываются.
func Init(dir string, out io.Writer) ([]string, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("создание директории %s: %w", dir, err)
	}

	var created []string
	for name, content := range initFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "  skip: %s (already exists)\n", name)
			continue
		}
		if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
			return nil, fmt.Errorf("запись %s: %w", name, err)
		}
		fmt.Fprintf(out, "  created: %s\n", name)
		created = append(created, path)
	}
	return created, nil
}
