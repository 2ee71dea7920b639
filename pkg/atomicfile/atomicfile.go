// Package atomicfile escribe archivos de forma atómica: el destino solo se
// observa con el contenido viejo completo o el nuevo completo, nunca a
// medias, incluso ante un corte de energía durante la escritura.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrNotExist se devuelve desde Read cuando el archivo no existe. No es una
// condición de error para los llamadores: señala "inicializar con defaults".
var ErrNotExist = os.ErrNotExist

// pathLocks serializa escritores concurrentes al mismo destino (disciplina de
// un solo escritor por ruta).
var pathLocks sync.Map // map[string]*sync.Mutex

func lockFor(path string) *sync.Mutex {
	mu, _ := pathLocks.LoadOrStore(filepath.Clean(path), &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Write persiste data en path con la disciplina temp + fsync + rename:
//
//  1. escribe en un hermano temporal con sufijo único por llamada
//  2. fsync del temporal
//  3. rename sobre el destino (el único paso observable como "cambió")
//  4. fsync del directorio para que el rename mismo sea durable
//
// Si cualquier paso falla, el destino conserva su contenido anterior.
func Write(path string, data []byte) error {
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio %s: %w", dir, err)
	}

	// Sufijo único por llamada: escritores concurrentes a rutas distintas no
	// pueden pisarse los temporales.
	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.NewString())

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("escribir temporal: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("fsync temporal: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cerrar temporal: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename sobre destino: %w", err)
	}

	if err := syncDir(dir); err != nil {
		return fmt.Errorf("fsync directorio: %w", err)
	}
	return nil
}

// Read devuelve el contenido completo de path. Un archivo ausente devuelve
// ErrNotExist; el llamador decide si eso significa "usar defaults". Validar
// que el contenido parsee es responsabilidad del llamador (ahí es donde un
// archivo presente pero ilegible se convierte en dato corrupto).
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	return data, nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
