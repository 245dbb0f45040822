package storage

import (
	"sync"
	"testing"
	"time"
)

func TestMemoriaSetGet(t *testing.T) {
	m := NewMemoria(time.Minute)
	defer m.Close()

	if err := m.Set("clave", []byte("valor"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, err := m.Get("clave")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(val) != "valor" {
		t.Errorf("Get = %q", val)
	}

	val, err = m.Get("inexistente")
	if err != nil || val != nil {
		t.Errorf("clave inexistente: val=%v err=%v, esperaba nil,nil", val, err)
	}
}

func TestMemoriaExpiracion(t *testing.T) {
	m := NewMemoria(time.Minute)
	defer m.Close()

	m.Set("efimera", []byte("x"), 50*time.Millisecond)
	if val, _ := m.Get("efimera"); val == nil {
		t.Fatal("debería existir antes de vencer")
	}
	time.Sleep(80 * time.Millisecond)
	if val, _ := m.Get("efimera"); val != nil {
		t.Error("debería haber vencido")
	}
}

func TestMemoriaSetConcurrenteSobreClaveVencida(t *testing.T) {
	m := NewMemoria(0)
	defer m.Close()

	// Un Get que encuentra la entrada vencida no debe borrar el valor que un
	// Set concurrente escribió mientras tanto.
	for i := 0; i < 200; i++ {
		m.Set("clave", []byte("vieja"), time.Nanosecond)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Get("clave")
		}()
		go func() {
			defer wg.Done()
			m.Set("clave", []byte("fresca"), time.Minute)
		}()
		wg.Wait()

		val, err := m.Get("clave")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(val) != "fresca" {
			t.Fatalf("iteración %d: val = %q, el Set concurrente se perdió", i, val)
		}
	}
}

func TestMemoriaDeleteYReset(t *testing.T) {
	m := NewMemoria(0)
	defer m.Close()

	m.Set("a", []byte("1"), 0)
	m.Set("b", []byte("2"), 0)

	if err := m.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if val, _ := m.Get("a"); val != nil {
		t.Error("a debería estar borrada")
	}
	// borrar de nuevo no es error
	if err := m.Delete("a"); err != nil {
		t.Errorf("Delete repetido: %v", err)
	}

	m.Reset()
	if val, _ := m.Get("b"); val != nil {
		t.Error("Reset debería vaciar todo")
	}
}
